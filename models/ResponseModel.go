package models

// Swagger / API docs: common request and response models referenced by handler annotations

// ErrorResponse is used in @Failure for error responses
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"password"`
	IP       string `json:"ip" binding:"required" example:"192.168.1.1"`
}

// LoginResponse is used in @Success for login
type LoginResponse struct {
	Message     string    `json:"message" example:"User successfully logged in"`
	AccessToken string    `json:"access_token" example:"eyJhbGc..."`
	Role        string    `json:"role" example:"admin"`
	User        LoginUser `json:"user"`
}

// LoginUser is the user object inside LoginResponse
type LoginUser struct {
	ID    int    `json:"id" example:"1"`
	Email string `json:"email" example:"user@example.com"`
}

// SuccessResponse is used in @Success for generic success
type SuccessResponse struct {
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}

// MessageResponse is generic response for APIs that return only {"message": "..."}
type MessageResponse struct {
	Message string `json:"message" example:"Success"`
}

// ReportResponse is the uniform envelope for all reporting endpoints.
// Every report call either fully succeeds (success=true, data set) or fails
// independently of its siblings (success=false, error set).
type ReportResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty" example:""`
}
