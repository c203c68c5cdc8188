package dto

import "github.com/goccy/go-json"

// APIMessage là body lỗi/thông báo chung của backend
type APIMessage struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MutationResponse là body trả về khi thêm/sửa nhân viên; thành công khi có data
type MutationResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// HasData kiểm tra data có tồn tại và khác null
func (r *MutationResponse) HasData() bool {
	return len(r.Data) > 0 && string(r.Data) != "null"
}
