package daq

import "fmt"

// ErrKind classifies why a driver call failed. The numeric ordering mirrors
// the original IP driver's return-code enum; callers should compare against
// the sentinel Err* values with errors.Is rather than switching on ErrKind
// directly.
type ErrKind int

const (
	KindIllegalStrNr ErrKind = iota + 1
	KindIllegalStrWidth
	KindStrNotDisabled
	KindIllegalWinCnt
	KindIllegalWinNr
	KindNoTrigInWin
	KindBufferTooSmall
	KindMorePostTrigThanConfigured
	KindMorePreTrigThanAvailable
	KindWinSizeMustBeMultipleOfSamples
	KindIrqSchemesWinAndStrAreExclusive
)

var errKindText = map[ErrKind]string{
	KindIllegalStrNr:                    "illegal stream number",
	KindIllegalStrWidth:                 "stream width is not a multiple of 8 bits",
	KindStrNotDisabled:                  "stream must be disabled before it can be configured",
	KindIllegalWinCnt:                   "window count is zero or exceeds the IP's configured maximum",
	KindIllegalWinNr:                    "illegal window number",
	KindNoTrigInWin:                     "window does not contain a trigger",
	KindBufferTooSmall:                  "destination buffer is smaller than the requested sample range",
	KindMorePostTrigThanConfigured:      "requested post-trigger samples exceed the stream's configured post-trigger count",
	KindMorePreTrigThanAvailable:        "requested pre-trigger samples exceed what the window actually recorded",
	KindWinSizeMustBeMultipleOfSamples:  "window size is not a multiple of the sample width",
	KindIrqSchemesWinAndStrAreExclusive: "a stream can have a window callback or a stream callback installed, never both",
}

// Error is the error type every daq operation returns. Err, when non-nil,
// is the lower-level cause (e.g. an mmap failure); most Kinds are pure
// validation failures and leave it nil.
type Error struct {
	Kind ErrKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("daqrec: %s: %v", errKindText[e.Kind], e.Err)
	}
	return fmt.Sprintf("daqrec: %s", errKindText[e.Kind])
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrIllegalStrNr) (etc.) match regardless of a
// wrapped cause or message text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind ErrKind) error               { return &Error{Kind: kind} }
func wrapErr(kind ErrKind, cause error) error { return &Error{Kind: kind, Err: cause} }

// Sentinel errors for errors.Is comparisons, e.g.:
//
//	if errors.Is(err, daq.ErrIllegalStrNr) { ... }
var (
	ErrIllegalStrNr                    = &Error{Kind: KindIllegalStrNr}
	ErrIllegalStrWidth                  = &Error{Kind: KindIllegalStrWidth}
	ErrStrNotDisabled                   = &Error{Kind: KindStrNotDisabled}
	ErrIllegalWinCnt                    = &Error{Kind: KindIllegalWinCnt}
	ErrIllegalWinNr                     = &Error{Kind: KindIllegalWinNr}
	ErrNoTrigInWin                      = &Error{Kind: KindNoTrigInWin}
	ErrBufferTooSmall                   = &Error{Kind: KindBufferTooSmall}
	ErrMorePostTrigThanConfigured       = &Error{Kind: KindMorePostTrigThanConfigured}
	ErrMorePreTrigThanAvailable         = &Error{Kind: KindMorePreTrigThanAvailable}
	ErrWinSizeMustBeMultipleOfSamples   = &Error{Kind: KindWinSizeMustBeMultipleOfSamples}
	ErrIrqSchemesWinAndStrAreExclusive  = &Error{Kind: KindIrqSchemesWinAndStrAreExclusive}
)
