package controllers

import (
	"net/http"

	"accounts/constants"
	"accounts/dto"
	"accounts/errors"
	"accounts/middleware"
	"accounts/response"
	"accounts/services"
	"accounts/services/notification"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Base
	auth     *services.AuthService
	sessions services.SessionRepository
}

func NewAuthController(base Base, auth *services.AuthService, sessions services.SessionRepository) AuthController {
	return AuthController{Base: base, auth: auth, sessions: sessions}
}

// currentSession đọc phiên cho các trang công khai; lỗi đều coi như chưa đăng nhập
func (a AuthController) currentSession(c *gin.Context) bool {
	session, err := a.sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		if !errors.IsUnauthorized(err) {
			a.Logger.Warn("read session: %v", err)
		}
		return false
	}
	middleware.SetCurrentSession(c, session)
	return true
}

func (a AuthController) LoginPage(c *gin.Context) {
	if a.currentSession(c) {
		response.Redirect(c, services.LandingPath(middleware.CurrentSession(c).Role))
		return
	}
	a.render(c, http.StatusOK, "login", gin.H{"Title": "Login", "HideNav": true})
}

func (a AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	_ = c.ShouldBind(&input)

	sid, session, err := a.auth.Login(c.Request.Context(), middleware.SessionID(c), &input)
	if err != nil {
		a.notify(c, notification.Error(errors.Message(err, "Login failed. Please check your credentials and try again.")))
		a.render(c, failureStatus(err), "login", gin.H{
			"Title":   "Login",
			"HideNav": true,
			"Email":   input.Email,
			"Error":   errors.Message(err, ""),
		})
		return
	}

	middleware.RotateSession(c, sid)
	a.redirect(c, services.LandingPath(session.Role), notification.Success("Login successful! Redirecting..."))
}

func (a AuthController) SignupPage(c *gin.Context) {
	if a.currentSession(c) {
		response.Redirect(c, services.LandingPath(middleware.CurrentSession(c).Role))
		return
	}
	a.render(c, http.StatusOK, "signup", gin.H{
		"Title":   "Sign Up",
		"HideNav": true,
		"Role":    constants.RoleAccounts,
		"Roles":   []string{constants.RoleAccounts},
	})
}

func (a AuthController) Signup(c *gin.Context) {
	var input dto.SignupInput
	_ = c.ShouldBind(&input)

	sid, session, err := a.auth.Signup(c.Request.Context(), middleware.SessionID(c), &input)
	if err != nil {
		a.notify(c, notification.Error(errors.Message(err, "Something went wrong. Please try again.")))
		role := input.Role
		if role == "" {
			role = constants.RoleAccounts
		}
		a.render(c, failureStatus(err), "signup", gin.H{
			"Title":    "Sign Up",
			"HideNav":  true,
			"Username": input.Username,
			"Email":    input.Email,
			"Role":     role,
			"Roles":    []string{constants.RoleAccounts},
			"Error":    errors.Message(err, ""),
		})
		return
	}

	middleware.RotateSession(c, sid)
	a.redirect(c, services.LandingPath(session.Role), notification.Success("Signup successful! Redirecting..."))
}

func (a AuthController) Logout(c *gin.Context) {
	if err := a.auth.Logout(c.Request.Context(), middleware.SessionID(c)); err != nil {
		a.Logger.Error("logout: %v", err)
	}
	a.redirect(c, constants.PathLogin, notification.Info("You have been logged out"))
}

// Home là trang chủ cho các role không phải Accounts
func (a AuthController) Home(c *gin.Context) {
	if !a.currentSession(c) {
		response.Redirect(c, constants.PathLogin)
		return
	}
	session := middleware.CurrentSession(c)
	if landing := services.LandingPath(session.Role); landing != constants.PathHome {
		response.Redirect(c, landing)
		return
	}
	a.render(c, http.StatusOK, "home", gin.H{"Title": "Home"})
}

// SessionInfo trả về thông tin người dùng của phiên hiện tại dạng JSON
func (a AuthController) SessionInfo(c *gin.Context) {
	if !a.currentSession(c) {
		response.Unauthorized(c, errors.ErrNoSession.Message)
		return
	}
	session := middleware.CurrentSession(c)
	response.Success(c, gin.H{
		"userId":   session.UserID,
		"role":     session.Role,
		"username": session.Username(),
	})
}
