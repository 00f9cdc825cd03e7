package http

// APIResponse represents standard API response.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// APIResponse400Err represents 400 error response.
type APIResponse400Err struct {
	Status  int               `json:"status" example:"400"`
	Message string            `json:"message" example:"Bad Request"`
	Data    []ValidationError `json:"data,omitempty"`
}

// APIResponse422Err represents 422 error response, returned when birth data
// is well-formed but no chart can be computed for it.
type APIResponse422Err struct {
	Status  int    `json:"status" example:"422"`
	Message string `json:"message" example:"Unprocessable Entity"`
	Data    string `json:"data,omitempty" example:"chart unavailable"`
}

// APIResponse429Err represents 429 error response from the per-client limiter.
type APIResponse429Err struct {
	Status  int    `json:"status" example:"429"`
	Message string `json:"message" example:"Too Many Requests"`
	Data    string `json:"data,omitempty"`
}

// APIResponse500Err represents 500 error response.
type APIResponse500Err struct {
	Status  int    `json:"status" example:"500"`
	Message string `json:"message" example:"Internal Server Error"`
	Data    string `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"birth_date"`
	Message string                 `json:"message,omitempty" example:"birth_date is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
