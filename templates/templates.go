package templates

import (
	"embed"
	"html/template"
	"strings"

	"accounts/models"
)

//go:embed *.html
var files embed.FS

// FuncMap là các hàm dùng chung trong template
var FuncMap = template.FuncMap{
	"joinDate": joinDate,
	"orNA":     orNA,
	"lower":    strings.ToLower,
}

// Load parse toàn bộ template nhúng trong binary
func Load() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(files, "*.html")
}

func joinDate(s string) string {
	if s == "" {
		return "N/A"
	}
	t, ok := models.ParseJoinDate(s)
	if !ok {
		return "N/A"
	}
	return t.Format("1/2/2006")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
