package handler

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool    `json:"success" example:"true"`
	Data    T       `json:"data"`
	Error   *string `json:"error"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response; data is always null on failure
type ErrorResponse struct {
	Success bool    `json:"success" example:"false"`
	Data    any     `json:"data"`
	Error   *string `json:"error" example:"Gross amount below minimum"`
}

// PingData represents the ping payload
// @Description Ping payload
type PingData struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-08-22T12:00:00Z"`
}
