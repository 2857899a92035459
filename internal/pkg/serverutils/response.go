package serverutils

// Response is the envelope returned by every successful endpoint.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Message: message,
	}
}
