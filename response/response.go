package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Response định nghĩa cấu trúc response JSON
type Response struct {
	Code int         `json:"code"`
	Mess string      `json:"mess"`
	Data interface{} `json:"data,omitempty"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Error trả về response lỗi
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Page render một template HTML
func Page(c *gin.Context, status int, name string, data gin.H) {
	c.HTML(status, name, data)
}

// ErrorPage render trang lỗi chung
func ErrorPage(c *gin.Context, status int, message string) {
	c.HTML(status, "error", gin.H{
		"Title":   "Error",
		"Status":  status,
		"Message": message,
	})
}

// Redirect chuyển hướng sau khi xử lý form; 303 để trình duyệt dùng GET
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// Attachment trả về file để trình duyệt tải xuống
func Attachment(c *gin.Context, fileName, contentType string, content []byte) {
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(fileName))
	c.Data(http.StatusOK, contentType, content)
}
