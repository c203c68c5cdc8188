package middleware

import (
	"net/http"

	"accounts/constants"
	"accounts/errors"
	"accounts/models"
	"accounts/response"
	"accounts/services"
	"accounts/services/logger"
	"accounts/services/notification"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware chỉ cho qua khi phiên đăng nhập còn hiệu lực, ngược lại chuyển về /login
func AuthMiddleware(sessions services.SessionRepository, toasts notification.Service, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sid := SessionID(c)

		session, err := sessions.Get(ctx, sid)
		if err != nil {
			if !errors.IsUnauthorized(err) {
				log.Error("load session: %v", err)
				_ = c.Error(err)
				c.Abort()
				return
			}
			if pushErr := toasts.Push(ctx, sid, notification.Error(errors.ErrNoSession.Message)); pushErr != nil {
				log.Error("push toast: %v", pushErr)
			}
			response.Redirect(c, constants.PathLogin)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentSession trả về phiên đã được AuthMiddleware nạp, nil nếu chưa đăng nhập
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*models.Session)
	return session
}

// SetCurrentSession gán phiên cho các route không đi qua AuthMiddleware
func SetCurrentSession(c *gin.Context, session *models.Session) {
	c.Set(sessionKey, session)
}

// ErrorHandler render trang lỗi cho các lỗi controller đẩy vào c.Errors
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)

		if appErr := errors.GetAppError(err); appErr != nil {
			response.ErrorPage(c, statusOf(appErr), appErr.Message)
			return
		}
		response.ErrorPage(c, http.StatusInternalServerError, "Server error")
	}
}

func statusOf(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrCodeUnauthorized, errors.ErrCodeNoSession:
		return http.StatusUnauthorized
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeBackend, errors.ErrCodeNetwork, errors.ErrCodeInvalidResponse:
		return http.StatusBadGateway
	}
	if errors.IsValidation(appErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
