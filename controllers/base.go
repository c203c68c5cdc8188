package controllers

import (
	"context"
	"net/http"

	"accounts/constants"
	"accounts/errors"
	"accounts/middleware"
	"accounts/response"
	"accounts/services/logger"
	"accounts/services/notification"

	"github.com/gin-gonic/gin"
)

// SessionEnder huỷ phiên khi người dùng đăng xuất hoặc backend báo token hết hạn
type SessionEnder interface {
	Logout(ctx context.Context, sid string) error
}

// Base gom các thao tác chung của mọi màn hình: render layout, toast và xử lý phiên hết hạn
type Base struct {
	Toasts   notification.Service
	Sessions SessionEnder
	Logger   logger.Logger
}

// render drain toast của phiên và render template trong layout chung
func (b Base) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	toasts, err := b.Toasts.Drain(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		b.Logger.Error("drain toasts: %v", err)
	}
	data["Toasts"] = toasts
	data["Session"] = middleware.CurrentSession(c)
	data["Path"] = c.Request.URL.Path

	response.Page(c, status, name, data)
}

func (b Base) notify(c *gin.Context, toast notification.Toast) {
	if err := b.Toasts.Push(c.Request.Context(), middleware.SessionID(c), toast); err != nil {
		b.Logger.Error("push toast: %v", err)
	}
}

// redirect đẩy toast rồi chuyển hướng; trang đích sẽ hiển thị toast
func (b Base) redirect(c *gin.Context, location string, toast notification.Toast) {
	b.notify(c, toast)
	response.Redirect(c, location)
}

// expire áp dụng chung cho mọi màn hình khi backend trả 401/403:
// xoá phiên, báo lỗi và quay về trang đăng nhập
func (b Base) expire(c *gin.Context, err error) {
	sid := middleware.SessionID(c)
	if logoutErr := b.Sessions.Logout(c.Request.Context(), sid); logoutErr != nil {
		b.Logger.Error("clear expired session: %v", logoutErr)
	}
	b.Logger.Info("session %s expired: %v", sid, err)
	b.redirect(c, constants.PathLogin, notification.Error(errors.Message(err, errors.ErrNoSession.Message)))
}

// storageFailed giao lỗi hạ tầng cho ErrorHandler
func (b Base) storageFailed(c *gin.Context, err error) {
	_ = c.Error(err)
}

// failureStatus chọn HTTP status khi render lại form sau khi thao tác thất bại
func failureStatus(err error) int {
	if errors.IsValidation(err) {
		return http.StatusUnprocessableEntity
	}
	if appErr := errors.GetAppError(err); appErr != nil && appErr.Status >= 400 && appErr.Status < 500 {
		return appErr.Status
	}
	return http.StatusBadGateway
}

func isStorageError(err error) bool {
	return errors.HasCode(err, errors.ErrCodeStorage)
}
