package models

// Response is the envelope every API endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}, message string) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(err string) Response {
	return Response{
		Success: false,
		Error:   err,
	}
}

// ErrorResponseWithCode carries the machine-readable error code so API
// consumers can branch on the kind, not the message text.
func ErrorResponseWithCode(err string, code string) Response {
	return Response{
		Success: false,
		Error:   err,
		Code:    code,
	}
}
