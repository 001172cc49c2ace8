package pnghdr

import (
	"errors"
	"fmt"
)

// Reasons carried by FormatError. Match them with errors.Is.
var (
	ErrBadSignature = errors.New("not a valid PNG file")
	ErrMissingIHDR  = errors.New("missing IHDR chunk")
)

// FormatError reports content that is not the expected PNG prefix: a wrong
// or truncated signature, or a first chunk that is not IHDR.
type FormatError struct {
	Path   string
	Reason error
	Err    error // underlying read error, if the signature was truncated
}

func (e *FormatError) Error() string {
	msg := e.Reason.Error()
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	if e.Path == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

// Unwrap exposes both the reason sentinel and the read error.
func (e *FormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Err}
}

// IOError reports a failure to open or read the file, including a short
// read past the signature.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsFormatError reports whether err is (or wraps) a *FormatError.
func IsFormatError(err error) bool {
	var e *FormatError
	return errors.As(err, &e)
}

// IsIOError reports whether err is (or wraps) an *IOError.
func IsIOError(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}
