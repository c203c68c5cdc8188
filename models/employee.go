package models

import "time"

// Employee là bản ghi nhân viên do backend sở hữu
type Employee struct {
	ID          string      `json:"_id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	BaseSalary  FlexDecimal `json:"baseSalary"`
	EmployeeID  string      `json:"employeeid"`
	JoinDate    string      `json:"joindate"`
	PAN         string      `json:"pan"`
	Aadhaar     string      `json:"adhaar"`
	Designation string      `json:"deg"`
}

var joinDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseJoinDate parse ngày vào làm theo các định dạng backend và form có thể gửi
func ParseJoinDate(s string) (time.Time, bool) {
	for _, layout := range joinDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FindEmployee tìm nhân viên theo id trong danh sách đã tải
func FindEmployee(employees []Employee, id string) (*Employee, bool) {
	for i := range employees {
		if employees[i].ID == id {
			return &employees[i], true
		}
	}
	return nil, false
}
