package services

import (
	"bytes"
	"fmt"
	"time"

	"accounts/constants"
	"accounts/errors"
	"accounts/models"

	"github.com/xuri/excelize/v2"
)

const notAvailable = "N/A"

// Export là một file Excel đã dựng xong, sẵn sàng trả về trình duyệt
type Export struct {
	FileName string
	Content  []byte
}

type column struct {
	Header string
	Width  float64
}

var employeeColumns = []column{
	{"Name", 20},
	{"Email", 30},
	{"Employee ID", 15},
	{"Base Salary (₹)", 15},
	{"Join Date", 15},
	{"PAN", 15},
	{"Aadhaar", 15},
	{"Designation", 20},
}

var salarySlipColumns = []column{
	{"Employee", 20},
	{"Month", 15},
	{"Days Worked", 12},
	{"Salary (₹)", 15},
}

// EmployeesWorkbook dựng Employees.xlsx từ danh sách nhân viên hiện tại
func EmployeesWorkbook(employees []models.Employee) (*Export, error) {
	if len(employees) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeNothingToExport, "No employees to export", nil)
	}

	rows := make([][]interface{}, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, []interface{}{
			orNA(emp.Username),
			orNA(emp.Email),
			orNA(emp.EmployeeID),
			emp.BaseSalary.InexactFloat64(),
			formatJoinDate(emp.JoinDate),
			orNA(emp.PAN),
			orNA(emp.Aadhaar),
			orNA(emp.Designation),
		})
	}

	content, err := writeSheet("Employees", employeeColumns, rows)
	if err != nil {
		return nil, err
	}
	return &Export{FileName: constants.EmployeesExportFile, Content: content}, nil
}

// SalarySlipsWorkbook dựng Salary_Slips_<ngày UTC>.xlsx từ danh sách phiếu lương hiện tại
func SalarySlipsWorkbook(slips []models.SalarySlip, now time.Time) (*Export, error) {
	if len(slips) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeNothingToExport, "No salary slips to export", nil)
	}

	rows := make([][]interface{}, 0, len(slips))
	for _, slip := range slips {
		rows = append(rows, []interface{}{
			orNA(string(slip.Employee)),
			orNA(slip.Month),
			slip.DaysWorked,
			slip.Salary.InexactFloat64(),
		})
	}

	content, err := writeSheet("Salary Slips", salarySlipColumns, rows)
	if err != nil {
		return nil, err
	}
	return &Export{FileName: SalarySlipsFileName(now), Content: content}, nil
}

func SalarySlipsFileName(now time.Time) string {
	return fmt.Sprintf(constants.SalarySlipsExportFile, now.UTC().Format("2006-01-02"))
}

// writeSheet ghi một sheet duy nhất: dòng tiêu đề, các dòng dữ liệu và độ rộng cột
func writeSheet(sheet string, columns []column, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, exportFailed(err)
	}

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, exportFailed(err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, exportFailed(err)
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, exportFailed(err)
		}
	}

	for i, col := range columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, exportFailed(err)
		}
		if err := f.SetColWidth(sheet, name, name, col.Width); err != nil {
			return nil, exportFailed(err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, exportFailed(err)
	}
	return buf.Bytes(), nil
}

func exportFailed(err error) error {
	return errors.NewAppError(errors.ErrCodeExportFailed, "Failed to export to Excel", err)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// formatJoinDate hiển thị ngày vào làm dạng M/D/YYYY
func formatJoinDate(s string) string {
	if s == "" {
		return notAvailable
	}
	t, ok := models.ParseJoinDate(s)
	if !ok {
		return notAvailable
	}
	return t.Format("1/2/2006")
}
