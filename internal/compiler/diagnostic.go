package compiler

import (
	"errors"

	cerrors "whilec/internal/errors"
	"whilec/internal/parser"
)

// Diagnostic maps the failure onto a CompilerError for rendering. The
// boolean is false when the report has no failure.
func (r *Report) Diagnostic() (cerrors.CompilerError, bool) {
	if r.Failure == nil {
		return cerrors.CompilerError{}, false
	}

	var (
		validation *ValidationError
		illegal    *parser.IllegalCharacterError
		parseErr   *parser.ParseError
	)

	switch err := r.Failure.Err; {
	case errors.As(err, &validation):
		return cerrors.InvalidCharacterSet(validation.Error()), true
	case errors.As(err, &illegal):
		return cerrors.IllegalCharacter(illegal.Char, illegal.Pos), true
	case errors.As(err, &parseErr):
		return cerrors.UnexpectedToken(parseErr.Code, parseErr.Error(), parseErr.Pos, parseErr.Length(),
			parseErr.Expected, parseErr.Found, parseErr.After), true
	default:
		return cerrors.CompilerError{
			Level:   cerrors.Error,
			Code:    cerrors.ErrorSourceUnreadable,
			Message: r.Failure.Message,
		}, true
	}
}

// Code returns the error code of the failure, or "" on success.
func (r *Report) Code() string {
	d, ok := r.Diagnostic()
	if !ok {
		return ""
	}
	return d.Code
}
