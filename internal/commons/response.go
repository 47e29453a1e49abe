package commons

// Response is the envelope every single-resource endpoint renders. Data
// is a pointer so failure responses omit it entirely instead of sending
// a zero-valued body.
type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

// ErrorResponse builds a failure envelope. The variadic reasons carry
// user-facing detail, such as the joined validation messages; pass none
// when the message alone is enough.
func ErrorResponse[T any](message string, reasons ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  reasons,
	}
}
