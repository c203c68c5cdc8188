package services

import (
	"accounts/constants"

	"github.com/shopspring/decimal"
)

var workingDays = decimal.NewFromInt(constants.WorkingDaysPerMonth)

// FallbackSalary là lương tạm tính (base / 26) * days, làm tròn 2 chữ số.
// Chỉ dùng để hiển thị khi backend không trả về salary.
func FallbackSalary(baseSalary decimal.Decimal, daysWorked int) decimal.Decimal {
	return baseSalary.Div(workingDays).Mul(decimal.NewFromInt(int64(daysWorked))).Round(2)
}
