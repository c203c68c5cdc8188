package dto

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SalarySlipInput là dữ liệu form tạo phiếu lương
type SalarySlipInput struct {
	UserID     string `form:"userId" validate:"required"`
	Month      string `form:"month" validate:"required,month"`
	DaysWorked string `form:"daysWorked" validate:"required,days_worked"`

	// Thu nhập thêm
	HouseRentAllowance string `form:"houseRentAllowance" validate:"omitempty,nonnegative_amount"`
	TransportAllowance string `form:"transportAllowance" validate:"omitempty,nonnegative_amount"`
	MedicalAllowance   string `form:"medicalAllowance" validate:"omitempty,nonnegative_amount"`
	OthersEarnings     string `form:"othersEarnings" validate:"omitempty,nonnegative_amount"`
	Bonus              string `form:"bonus" validate:"omitempty,nonnegative_amount"`
	OT                 string `form:"ot" validate:"omitempty,nonnegative_amount"`

	// Khấu trừ
	IncomeTax        string `form:"incomeTax" validate:"omitempty,nonnegative_amount"`
	ProvidentFund    string `form:"providentFund" validate:"omitempty,nonnegative_amount"`
	ESI              string `form:"esi" validate:"omitempty,nonnegative_amount"`
	ProfessionalTax  string `form:"professionalTax" validate:"omitempty,nonnegative_amount"`
	OthersDeductions string `form:"othersDeductions" validate:"omitempty,nonnegative_amount"`
	Advance          string `form:"advance" validate:"omitempty,nonnegative_amount"`
}

// SalarySlipPayload là body gửi lên /api/salary-slip
type SalarySlipPayload struct {
	UserID             string  `json:"userId"`
	Month              string  `json:"month"`
	DaysWorked         int     `json:"daysWorked"`
	IncomeTax          float64 `json:"incomeTax"`
	HouseRentAllowance float64 `json:"houseRentAllowance"`
	TransportAllowance float64 `json:"transportAllowance"`
	MedicalAllowance   float64 `json:"medicalAllowance"`
	OthersEarnings     float64 `json:"othersEarnings"`
	Bonus              float64 `json:"bonus"`
	OT                 float64 `json:"ot"`
	ProvidentFund      float64 `json:"providentFund"`
	ESI                float64 `json:"esi"`
	ProfessionalTax    float64 `json:"professionalTax"`
	OthersDeductions   float64 `json:"othersDeductions"`
	Advance            float64 `json:"advance"`
}

// SalarySlipCreated là body backend trả về khi tạo phiếu lương
type SalarySlipCreated struct {
	ID     string              `json:"_id"`
	Salary decimal.NullDecimal `json:"salary"`
	PDFURL string              `json:"pdfUrl"`
}

// Normalize bỏ khoảng trắng thừa ở mọi trường
func (in *SalarySlipInput) Normalize() {
	for _, f := range in.fields() {
		*f = strings.TrimSpace(*f)
	}
}

func (in *SalarySlipInput) fields() []*string {
	return []*string{
		&in.UserID, &in.Month, &in.DaysWorked,
		&in.HouseRentAllowance, &in.TransportAllowance, &in.MedicalAllowance,
		&in.OthersEarnings, &in.Bonus, &in.OT,
		&in.IncomeTax, &in.ProvidentFund, &in.ESI,
		&in.ProfessionalTax, &in.OthersDeductions, &in.Advance,
	}
}

// Days trả về số ngày công; input phải được validate trước
func (in *SalarySlipInput) Days() int {
	d, _ := strconv.Atoi(in.DaysWorked)
	return d
}

// Payload dựng body gửi backend, các khoản để trống mặc định là 0
func (in *SalarySlipInput) Payload() SalarySlipPayload {
	return SalarySlipPayload{
		UserID:             in.UserID,
		Month:              in.Month,
		DaysWorked:         in.Days(),
		IncomeTax:          amountOrZero(in.IncomeTax),
		HouseRentAllowance: amountOrZero(in.HouseRentAllowance),
		TransportAllowance: amountOrZero(in.TransportAllowance),
		MedicalAllowance:   amountOrZero(in.MedicalAllowance),
		OthersEarnings:     amountOrZero(in.OthersEarnings),
		Bonus:              amountOrZero(in.Bonus),
		OT:                 amountOrZero(in.OT),
		ProvidentFund:      amountOrZero(in.ProvidentFund),
		ESI:                amountOrZero(in.ESI),
		ProfessionalTax:    amountOrZero(in.ProfessionalTax),
		OthersDeductions:   amountOrZero(in.OthersDeductions),
		Advance:            amountOrZero(in.Advance),
	}
}

func amountOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// FieldLabel gắn tên trường form với nhãn hiển thị
type FieldLabel struct {
	Name  string
	Label string
}

// EarningFields là các khoản thu nhập thêm, theo thứ tự hiển thị
var EarningFields = []FieldLabel{
	{Name: "houseRentAllowance", Label: "House Rent Allowance"},
	{Name: "transportAllowance", Label: "Transport Allowance"},
	{Name: "medicalAllowance", Label: "Medical Allowance"},
	{Name: "othersEarnings", Label: "Other Earnings"},
	{Name: "bonus", Label: "Bonus"},
	{Name: "ot", Label: "OT"},
}

// DeductionFields là các khoản khấu trừ, theo thứ tự hiển thị
var DeductionFields = []FieldLabel{
	{Name: "incomeTax", Label: "Income Tax"},
	{Name: "providentFund", Label: "Provident Fund"},
	{Name: "esi", Label: "ESI"},
	{Name: "professionalTax", Label: "Professional Tax"},
	{Name: "othersDeductions", Label: "Other Deductions"},
	{Name: "advance", Label: "Advance"},
}

// FieldLabelOf trả về nhãn của một trường form
func FieldLabelOf(name string) string {
	for _, f := range EarningFields {
		if f.Name == name {
			return f.Label
		}
	}
	for _, f := range DeductionFields {
		if f.Name == name {
			return f.Label
		}
	}
	return name
}

// Value trả về giá trị của một trường form theo tên, dùng khi render lại form
func (in *SalarySlipInput) Value(name string) string {
	switch name {
	case "userId":
		return in.UserID
	case "month":
		return in.Month
	case "daysWorked":
		return in.DaysWorked
	case "houseRentAllowance":
		return in.HouseRentAllowance
	case "transportAllowance":
		return in.TransportAllowance
	case "medicalAllowance":
		return in.MedicalAllowance
	case "othersEarnings":
		return in.OthersEarnings
	case "bonus":
		return in.Bonus
	case "ot":
		return in.OT
	case "incomeTax":
		return in.IncomeTax
	case "providentFund":
		return in.ProvidentFund
	case "esi":
		return in.ESI
	case "professionalTax":
		return in.ProfessionalTax
	case "othersDeductions":
		return in.OthersDeductions
	case "advance":
		return in.Advance
	}
	return ""
}
