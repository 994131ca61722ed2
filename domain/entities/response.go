package entities

// Response is the envelope the library wraps around every command result.
type Response[T any] struct {
	ErrorMessage *string `json:"errorMessage"`
	Data         *T      `json:"data"`
	Success      bool    `json:"success"`
}

// Message returns the error message, or an empty string when none was sent.
func (r *Response[T]) Message() string {
	if r == nil || r.ErrorMessage == nil {
		return ""
	}
	return *r.ErrorMessage
}
