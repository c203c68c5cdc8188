package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EmployeeInput là dữ liệu form thêm/sửa nhân viên
type EmployeeInput struct {
	Username    string `form:"username" validate:"required"`
	Email       string `form:"email" validate:"required,emailaddr"`
	BaseSalary  string `form:"baseSalary" validate:"required,positive_amount"`
	EmployeeID  string `form:"employeeid" validate:"required"`
	JoinDate    string `form:"joindate" validate:"omitempty,joindate"`
	PAN         string `form:"pan"`
	Aadhaar     string `form:"adhaar"`
	Designation string `form:"deg"`
}

// EmployeePayload là body gửi lên /api/add-employees và /api/edit-employees/:id
type EmployeePayload struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	BaseSalary  float64 `json:"baseSalary"`
	EmployeeID  string  `json:"employeeid"`
	JoinDate    string  `json:"joindate"`
	PAN         string  `json:"pan"`
	Aadhaar     string  `json:"adhaar"`
	Designation string  `json:"deg"`
}

// Normalize bỏ khoảng trắng thừa ở các trường văn bản
func (in *EmployeeInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.BaseSalary = strings.TrimSpace(in.BaseSalary)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.JoinDate = strings.TrimSpace(in.JoinDate)
	in.PAN = strings.TrimSpace(in.PAN)
	in.Aadhaar = strings.TrimSpace(in.Aadhaar)
	in.Designation = strings.TrimSpace(in.Designation)
}

// Payload dựng body gửi backend; input phải được validate trước
func (in *EmployeeInput) Payload() EmployeePayload {
	salary, _ := decimal.NewFromString(in.BaseSalary)
	return EmployeePayload{
		Username:    in.Username,
		Email:       in.Email,
		BaseSalary:  salary.InexactFloat64(),
		EmployeeID:  in.EmployeeID,
		JoinDate:    in.JoinDate,
		PAN:         in.PAN,
		Aadhaar:     in.Aadhaar,
		Designation: in.Designation,
	}
}
