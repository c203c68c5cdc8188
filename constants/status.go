package constants

// Role của người dùng; chỉ dùng để chọn trang đích sau khi đăng nhập
const (
	RoleAccounts = "Accounts"
)

// Đường dẫn của các màn hình
const (
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathHome      = "/"
	PathAccounts  = "/accounts"
	PathEmployees = "/employees"
)

// Xác nhận xoá nhân viên phải gõ đúng cụm này
const DeleteConfirmationPhrase = "DELETE"

// Số ngày công chuẩn dùng cho lương tạm tính
const WorkingDaysPerMonth = 26

// Giới hạn số ngày công của một phiếu lương
const (
	MinDaysWorked = 0
	MaxDaysWorked = 31
)

// Tên file xuất Excel
const (
	EmployeesExportFile   = "Employees.xlsx"
	SalarySlipsExportFile = "Salary_Slips_%s.xlsx"
)

// Months là danh sách tháng cố định của form phiếu lương
var Months = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// IsMonth kiểm tra tên tháng có thuộc danh sách không
func IsMonth(name string) bool {
	for _, m := range Months {
		if m == name {
			return true
		}
	}
	return false
}
