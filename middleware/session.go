package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionIDKey      = "sessionId"
	sessionCookieKey  = "sessionCookie"
	sessionCookieLife = 30 * 24 * 60 * 60
)

// CookieOptions cấu hình cookie giữ session id
type CookieOptions struct {
	Name   string
	Secure bool
}

// SessionMiddleware đọc session id từ cookie, tạo mới nếu chưa có và gán vào context
func SessionMiddleware(opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionCookieKey, opts)

		sessionId, err := c.Cookie(opts.Name)
		if err != nil || sessionId == "" {
			sessionId = uuid.NewString()
			writeCookie(c, opts, sessionId)
		}

		c.Set(sessionIDKey, sessionId)
		c.Next()
	}
}

// SessionID trả về session id của request hiện tại
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// RotateSession thay session id sau khi đăng nhập thành công
func RotateSession(c *gin.Context, sessionId string) {
	opts, _ := c.Get(sessionCookieKey)
	cookie, ok := opts.(CookieOptions)
	if !ok {
		cookie = CookieOptions{Name: "sid"}
	}
	writeCookie(c, cookie, sessionId)
	c.Set(sessionIDKey, sessionId)
}

func writeCookie(c *gin.Context, opts CookieOptions, value string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.Name, value, sessionCookieLife, "/", "", opts.Secure, true)
}
