package utils

// ApiResponse is the uniform envelope returned on every call, success or
// failure. Errors is always present and empty when not applicable.
type ApiResponse struct {
	Success bool     `json:"success"`
	Data    any      `json:"data"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func OK(data any, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
		Errors:  []string{},
	}
}

func Fail(message string, errs []string) ApiResponse {
	if errs == nil {
		errs = []string{}
	}
	return ApiResponse{
		Success: false,
		Data:    nil,
		Message: message,
		Errors:  errs,
	}
}
