package console

import (
	"errors"
)

// Messages for malformed numeric input
const (
	MsgBadAge    = "Age must be a positive number."
	MsgBadClaims = "Claims must be a non-negative number."
)

// ErrEndOfInput is reported when the input stream closes before a prompt is
// answered.
var ErrEndOfInput = errors.New("EOF when reading a line")

// InputError marks a value the applicant typed that is not a number
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string {
	return e.Msg
}

// prefix returns the console label for err
func prefix(err error) string {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return "[Input Error]"
	}
	return "[Unexpected Error]"
}
