package models

// Roles carried inside bearer tokens. Two-value set.
const (
	RoleAdministrator = "administrator"
	RoleUser          = "user"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type UpdateStatusRequest struct {
	Status InvoiceStatus `json:"status" binding:"required"`
}
