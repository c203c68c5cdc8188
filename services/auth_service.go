package services

import (
	"context"

	"accounts/constants"
	"accounts/dto"
	"accounts/models"
	"accounts/services/logger"
	"accounts/validator"

	"github.com/google/uuid"
)

// AuthBackend là hai endpoint xác thực của backend
type AuthBackend interface {
	Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResponse, error)
	Signup(ctx context.Context, in dto.SignupInput) (*dto.AuthResponse, error)
}

type AuthService struct {
	backend  AuthBackend
	sessions SessionRepository
	screens  *ScreenStateStore
	log      logger.Logger
}

func NewAuthService(backend AuthBackend, sessions SessionRepository, screens *ScreenStateStore, log logger.Logger) *AuthService {
	return &AuthService{backend: backend, sessions: sessions, screens: screens, log: log}
}

// Login xác thực với backend rồi lưu phiên dưới một session id mới.
// currentSID (nếu có) bị huỷ để tránh session fixation.
func (s *AuthService) Login(ctx context.Context, currentSID string, in *dto.LoginInput) (string, *models.Session, error) {
	if err := validator.ValidateLogin(in); err != nil {
		return "", nil, err
	}

	resp, err := s.backend.Login(ctx, *in)
	if err != nil {
		return "", nil, err
	}
	return s.establish(ctx, currentSID, resp)
}

func (s *AuthService) Signup(ctx context.Context, currentSID string, in *dto.SignupInput) (string, *models.Session, error) {
	if err := validator.ValidateSignup(in); err != nil {
		return "", nil, err
	}

	resp, err := s.backend.Signup(ctx, *in)
	if err != nil {
		return "", nil, err
	}
	return s.establish(ctx, currentSID, resp)
}

func (s *AuthService) establish(ctx context.Context, currentSID string, resp *dto.AuthResponse) (string, *models.Session, error) {
	if currentSID != "" {
		if err := s.Logout(ctx, currentSID); err != nil {
			s.log.Warn("drop previous session: %v", err)
		}
	}

	sid := uuid.NewString()
	session := resp.Session()
	if err := s.sessions.Set(ctx, sid, session); err != nil {
		return "", nil, err
	}
	s.log.Info("user %s (%s) signed in", session.UserID, session.Role)
	return sid, &session, nil
}

// Logout xoá phiên và mọi dữ liệu màn hình của nó; dùng cả khi backend báo hết hạn
func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if err := s.sessions.Clear(ctx, sid); err != nil {
		return err
	}
	if sid == "" {
		return nil
	}
	return s.screens.Clear(ctx, sid)
}

// LandingPath chọn trang đích sau đăng nhập theo role
func LandingPath(role string) string {
	if role == constants.RoleAccounts {
		return constants.PathAccounts
	}
	return constants.PathHome
}
