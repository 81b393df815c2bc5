package dto

// AdminCredentialsRequest entrada para login y creación de admin.
type AdminCredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse {success:true, token, message}.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}
