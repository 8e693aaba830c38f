package dto

// Response is the envelope every endpoint returns. Data and Error are always
// present and null when unset; Error is the user-readable message as a plain
// string, never a structured object.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *string     `json:"error"`
}

// NewSuccessResponse creates a success response wrapping the payload
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates a failure response carrying the message
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Error:   &message,
	}
}

// IDRequest represents a request with an ID path parameter
type IDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}
