package dto

// RegisterRequest Body für POST /api/auth/register.
type RegisterRequest struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// LoginRequest Body für POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse Antwort auf Register/Login.
type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	CompanyID string `json:"companyId"`
	Role      string `json:"role"`
}
