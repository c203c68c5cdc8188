package models

import "github.com/goccy/go-json"

// SessionUser là object user backend trả về khi đăng nhập/đăng ký
type SessionUser struct {
	ID            FlexString      `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Role          string          `json:"role"`
	BaseSalary    FlexString      `json:"baseSalary"`
	AssignedAdmin json.RawMessage `json:"assignedAdmin,omitempty"`
}

// Session mirror phiên đăng nhập của backend: token, userId, role và user
type Session struct {
	Token  string      `json:"token"`
	UserID string      `json:"userId"`
	Role   string      `json:"role"`
	User   SessionUser `json:"user"`
}

// Username trả về tên hiển thị trên navbar
func (s *Session) Username() string {
	if s == nil {
		return ""
	}
	return s.User.Username
}
