package model

type Role string

const (
	RoleBuyer  Role = "ROLE_BUYER"
	RoleSeller Role = "ROLE_SELLER"
	RoleAdmin  Role = "ROLE_ADMIN"
)

type User struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=20"`
	Role     Role   `json:"role"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// signinのレスポンス。jwtをそのままセッションストアに保存する。
type SigninResponse struct {
	Message string `json:"message"`
	JWT     string `json:"jwt"`
}
