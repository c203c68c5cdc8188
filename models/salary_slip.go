package models

import (
	"bytes"
	"path"
	"strings"

	"github.com/goccy/go-json"
)

// SlipEmployee là tên nhân viên trên phiếu lương; backend có thể trả chuỗi hoặc object
type SlipEmployee string

func (e *SlipEmployee) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = ""
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			Username string `json:"username"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*e = SlipEmployee(obj.Username)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*e = SlipEmployee(s)
	return nil
}

// SalarySlip là một dòng trong bảng phiếu lương
type SalarySlip struct {
	ID         string       `json:"_id"`
	Employee   SlipEmployee `json:"user"`
	Month      string       `json:"month"`
	DaysWorked int          `json:"days"`
	Salary     FlexDecimal  `json:"salary"`
	// Estimated = true khi Salary là lương tạm tính, backend không trả về
	Estimated bool   `json:"estimated,omitempty"`
	PDFURL    string `json:"pdfUrl"`
}

// PDFFile trả về tên file PDF trên backend (phần cuối của pdfUrl)
func (s SalarySlip) PDFFile() string {
	if s.PDFURL == "" {
		return ""
	}
	return path.Base(strings.TrimRight(s.PDFURL, "/"))
}

// DownloadName là tên file khi người dùng tải PDF
func (s SalarySlip) DownloadName() string {
	return string(s.Employee) + "-" + s.Month + "-salary-slip.pdf"
}

// SalaryDisplay định dạng lương để hiển thị
func (s SalarySlip) SalaryDisplay() string {
	if s.Estimated {
		return s.Salary.StringFixed(2)
	}
	return s.Salary.String()
}

// RemoveSlip bỏ phiếu lương có id khỏi danh sách, giữ nguyên thứ tự
func RemoveSlip(slips []SalarySlip, id string) []SalarySlip {
	out := make([]SalarySlip, 0, len(slips))
	for _, s := range slips {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
