package constants

// Standard Response Field Keys
const (
	ResponseFieldStatusCode = "statusCode"
	ResponseFieldData       = "data"
	ResponseFieldMessage    = "message"
	ResponseFieldSuccess    = "success"
)

// APIResponse is the uniform envelope returned by every endpoint.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// BuildResponse wraps data in the standard response envelope.
func BuildResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// BuildErrorResponse wraps a failure in the standard response envelope.
// Details are optional and never carry stack traces.
func BuildErrorResponse(statusCode int, message string, details any) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       details,
		Message:    message,
		Success:    false,
	}
}
