package serverutils

// BaseResponse is the envelope every endpoint answers with.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) *BaseResponse[any] {
	return &BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// ValidationErrorResponse carries the offending fields keyed by their JSON name.
func ValidationErrorResponse(code int, message string, fields map[string]string) *BaseResponse[map[string]string] {
	return &BaseResponse[map[string]string]{
		Success: false,
		Code:    code,
		Message: message,
		Data:    fields,
	}
}
