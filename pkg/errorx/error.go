package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string

	// RetryAfter is the number of seconds the client must wait before trying
	// again. It is only meaningful with TooManyRequests.
	RetryAfter int64
}

func (e Error) Error() string {
	return e.Message
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func NewRetryAfter(code Code, retryAfter int64, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...), RetryAfter: retryAfter}
}
