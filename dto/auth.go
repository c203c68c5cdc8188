package dto

import "accounts/models"

type LoginInput struct {
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type SignupInput struct {
	Username string `form:"username" json:"username" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Role     string `form:"role" json:"role" validate:"required"`
}

// AuthResponse là body backend trả về cho /auth/login và /user/signup
type AuthResponse struct {
	Token string              `json:"token"`
	User  *models.SessionUser `json:"user"`
}

// Session chuyển response thành phiên đăng nhập
func (r *AuthResponse) Session() models.Session {
	return models.Session{
		Token:  r.Token,
		UserID: r.User.ID.String(),
		Role:   r.User.Role,
		User:   *r.User,
	}
}
