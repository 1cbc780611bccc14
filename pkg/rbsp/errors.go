package rbsp

import "github.com/cockroachdb/errors"

// Error kinds shared by every stage of a conversion. Errors are tagged with
// errors.Mark, so errors.Is keeps working through wrapping.
var (
	// ErrIO marks open, read and write failures.
	ErrIO = errors.New("rbsp: i/o error")
	// ErrFormat marks malformed input that can be skipped.
	ErrFormat = errors.New("rbsp: format error")
	// ErrData marks a structural assumption the converter cannot route
	// around. It aborts the current file.
	ErrData = errors.New("rbsp: data error")
)

var (
	ErrInvalidMagic = FormatErrorf("invalid rBSP magic")
	ErrTruncated    = FormatErrorf("file is smaller than an rBSP header")
)

// IOErrorf returns an error marked with ErrIO.
func IOErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrIO)
}

// FormatErrorf returns an error marked with ErrFormat.
func FormatErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrFormat)
}

// DataErrorf returns an error marked with ErrData.
func DataErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrData)
}

// WrapIO wraps err and marks it with ErrIO. It returns nil for a nil err.
func WrapIO(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, format, args...), ErrIO)
}

func IsIO(err error) bool     { return errors.Is(err, ErrIO) }
func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }
func IsData(err error) bool   { return errors.Is(err, ErrData) }
