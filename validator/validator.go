package validator

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"accounts/constants"
	"accounts/dto"
	"accounts/errors"
	"accounts/models"

	playground "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()

	// dùng tên trong tag form để map ra nhãn
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("emailaddr", func(fl playground.FieldLevel) bool {
		return isValidEmail(fl.Field().String())
	})
	v.RegisterValidation("positive_amount", func(fl playground.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	v.RegisterValidation("nonnegative_amount", func(fl playground.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	v.RegisterValidation("joindate", func(fl playground.FieldLevel) bool {
		_, ok := models.ParseJoinDate(fl.Field().String())
		return ok
	})
	v.RegisterValidation("month", func(fl playground.FieldLevel) bool {
		return constants.IsMonth(fl.Field().String())
	})
	v.RegisterValidation("days_worked", func(fl playground.FieldLevel) bool {
		days, err := strconv.Atoi(fl.Field().String())
		return err == nil && days >= constants.MinDaysWorked && days <= constants.MaxDaysWorked
	})
	return v
}

// isValidEmail kiểm tra email hợp lệ
func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateLogin chỉ kiểm tra các trường bắt buộc
func ValidateLogin(input *dto.LoginInput) error {
	if err := validate.Struct(input); err != nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Please fill in both fields.", nil)
	}
	return nil
}

// ValidateSignup chỉ kiểm tra các trường bắt buộc
func ValidateSignup(input *dto.SignupInput) error {
	if err := validate.Struct(input); err != nil {
		return errors.NewAppError(errors.ErrCodeRequiredField, "All fields are required", nil)
	}
	return nil
}

// ValidateEmployee validate form thêm/sửa nhân viên
func ValidateEmployee(input *dto.EmployeeInput) error {
	fieldErrs := structErrors(input)
	if len(fieldErrs) == 0 {
		return nil
	}

	if hasTag(fieldErrs, "required") {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Username, email, base salary, and employee ID are required", nil)
	}

	switch fieldErrs[0].Tag() {
	case "emailaddr":
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Invalid email format", nil)
	case "positive_amount":
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "Base salary must be a positive number", nil)
	case "joindate":
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Invalid join date format", nil)
	}
	return errors.NewAppError(errors.ErrCodeValidation, "Invalid employee data", nil)
}

// ValidateSalarySlip validate form tạo phiếu lương
func ValidateSalarySlip(input *dto.SalarySlipInput) error {
	fieldErrs := structErrors(input)
	if len(fieldErrs) == 0 {
		return nil
	}

	if hasTag(fieldErrs, "required") {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Please fill all required fields", nil)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "month":
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid month", nil)
	case "days_worked":
		return errors.NewAppError(errors.ErrCodeValidation, "Invalid number of days", nil)
	case "nonnegative_amount":
		label := dto.FieldLabelOf(fe.Field())
		if _, err := decimal.NewFromString(input.Value(fe.Field())); err != nil {
			return errors.NewAppError(errors.ErrCodeInvalidAmount, label+" must be a number", nil)
		}
		return errors.NewAppError(errors.ErrCodeInvalidAmount, label+" cannot be negative", nil)
	}
	return errors.NewAppError(errors.ErrCodeValidation, "Invalid salary slip data", nil)
}

// ValidateDeleteConfirmation yêu cầu gõ đúng cụm DELETE
func ValidateDeleteConfirmation(text string) error {
	if text != constants.DeleteConfirmationPhrase {
		return errors.NewAppError(errors.ErrCodeConfirmationRequired, "Please type '"+constants.DeleteConfirmationPhrase+"' to confirm!", nil)
	}
	return nil
}

func structErrors(s interface{}) playground.ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return nil
	}
	return fieldErrs
}

func hasTag(fieldErrs playground.ValidationErrors, tag string) bool {
	for _, fe := range fieldErrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}
