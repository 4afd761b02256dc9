// Package errors provides structured error types for the bytewire library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: field path, target type
// name, stream offset, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfRange).
//		Type("uint16").
//		Detail("value %d does not fit uint16", v).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(v, "uint16")
//	err := errors.UnexpectedEnd(offset, want, have)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// so callers can test against sentinel-style values:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindLimitExceeded}) {
//		// declared length rejected by the read budget
//	}
package errors
