package services

import (
	"context"
	"time"

	"accounts/dto"
	"accounts/errors"
	"accounts/models"
	"accounts/services/logger"
	"accounts/validator"

	"golang.org/x/sync/errgroup"
)

// SalaryBackend là các lời gọi backend mà màn hình phiếu lương cần
type SalaryBackend interface {
	ListEmployees(ctx context.Context, token string) ([]models.Employee, error)
	ListSalarySlips(ctx context.Context, token string) ([]models.SalarySlip, error)
	CreateSalarySlip(ctx context.Context, token string, payload dto.SalarySlipPayload) (*dto.SalarySlipCreated, error)
	DeleteSalarySlip(ctx context.Context, token, id string) (string, error)
}

type SalaryDashboard struct {
	backend SalaryBackend
	screens *ScreenStateStore
	log     logger.Logger
}

func NewSalaryDashboard(backend SalaryBackend, screens *ScreenStateStore, log logger.Logger) *SalaryDashboard {
	return &SalaryDashboard{backend: backend, screens: screens, log: log}
}

// Load tải song song nhân viên và phiếu lương.
// Lỗi 401/403 của một bên huỷ bên còn lại; lỗi phía nhân viên được ưu tiên.
func (d *SalaryDashboard) Load(ctx context.Context, sid, token string) (*SalaryScreen, error) {
	if token == "" {
		return nil, errors.ErrNoSession
	}

	var screen SalaryScreen
	var employeesErr, slipsErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		employees, err := d.backend.ListEmployees(gctx, token)
		if err != nil {
			employeesErr = err
			if errors.IsUnauthorized(err) {
				return err
			}
			return nil
		}
		screen.Employees = employees
		return nil
	})
	g.Go(func() error {
		slips, err := d.backend.ListSalarySlips(gctx, token)
		if err != nil {
			slipsErr = err
			if errors.IsUnauthorized(err) {
				return err
			}
			return nil
		}
		screen.Slips = slips
		return nil
	})
	_ = g.Wait()

	switch {
	case errors.IsUnauthorized(employeesErr):
		return nil, employeesErr
	case errors.IsUnauthorized(slipsErr):
		return nil, slipsErr
	case employeesErr != nil:
		return nil, employeesErr
	case slipsErr != nil:
		return nil, slipsErr
	}

	if err := d.screens.SaveSalary(ctx, sid, &screen); err != nil {
		return nil, err
	}
	return &screen, nil
}

// Current trả về trạng thái màn hình đã mount; found = false khi cần mount lại
func (d *SalaryDashboard) Current(ctx context.Context, sid string) (*SalaryScreen, bool, error) {
	return d.screens.LoadSalary(ctx, sid)
}

// Generate tạo phiếu lương và thêm vào cuối bảng, không tải lại danh sách
func (d *SalaryDashboard) Generate(ctx context.Context, sid, token string, in *dto.SalarySlipInput) (*models.SalarySlip, error) {
	in.Normalize()
	if err := validator.ValidateSalarySlip(in); err != nil {
		return nil, err
	}

	screen, err := d.current(ctx, sid, token)
	if err != nil {
		return nil, err
	}
	emp, ok := models.FindEmployee(screen.Employees, in.UserID)
	if !ok {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, "Employee not found", nil)
	}

	created, err := d.backend.CreateSalarySlip(ctx, token, in.Payload())
	if err != nil {
		return nil, err
	}

	slip := models.SalarySlip{
		ID:         created.ID,
		Employee:   models.SlipEmployee(emp.Username),
		Month:      in.Month,
		DaysWorked: in.Days(),
		PDFURL:     created.PDFURL,
	}
	if created.Salary.Valid && !created.Salary.Decimal.IsZero() {
		slip.Salary = models.NewFlexDecimal(created.Salary.Decimal)
	} else {
		slip.Salary = models.NewFlexDecimal(FallbackSalary(emp.BaseSalary.Decimal, slip.DaysWorked))
		slip.Estimated = true
		d.log.Info("salary slip %s has no salary from backend, showing estimate %s", slip.ID, slip.Salary.StringFixed(2))
	}

	found, err := d.screens.UpdateSalary(ctx, sid, func(screen *SalaryScreen) {
		screen.Slips = append(screen.Slips, slip)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		d.log.Debug("salary screen of %s expired before slip %s was added", sid, slip.ID)
	}
	return &slip, nil
}

// Delete xoá phiếu lương khi người dùng đã đồng ý; chưa đồng ý thì không gửi request
func (d *SalaryDashboard) Delete(ctx context.Context, sid, token, id string, confirmed bool) (string, error) {
	if !confirmed {
		return "", errors.NewAppError(errors.ErrCodeConfirmationRequired, "Deletion cancelled", nil)
	}
	if id == "" {
		return "", errors.NewAppError(errors.ErrCodeRequiredField, "No salary slip ID provided for deletion", nil)
	}

	message, err := d.backend.DeleteSalarySlip(ctx, token, id)
	if err != nil {
		return "", err
	}

	if _, err := d.screens.UpdateSalary(ctx, sid, func(screen *SalaryScreen) {
		screen.Slips = models.RemoveSlip(screen.Slips, id)
	}); err != nil {
		return "", err
	}
	return message, nil
}

// FindSlip tìm phiếu lương theo tên file PDF trong bảng đang hiển thị
func (d *SalaryDashboard) FindSlip(ctx context.Context, sid, file string) (*models.SalarySlip, bool, error) {
	screen, found, err := d.screens.LoadSalary(ctx, sid)
	if err != nil || !found {
		return nil, false, err
	}
	for i := range screen.Slips {
		if screen.Slips[i].PDFFile() == file {
			return &screen.Slips[i], true, nil
		}
	}
	return nil, false, nil
}

// Export dựng file Excel từ bảng phiếu lương đang hiển thị, mount lại nếu trạng thái đã hết hạn
func (d *SalaryDashboard) Export(ctx context.Context, sid, token string, now time.Time) (*Export, error) {
	screen, err := d.current(ctx, sid, token)
	if err != nil {
		return nil, err
	}
	return SalarySlipsWorkbook(screen.Slips, now)
}

// current lấy trạng thái màn hình, mount lại nếu đã hết hạn
func (d *SalaryDashboard) current(ctx context.Context, sid, token string) (*SalaryScreen, error) {
	screen, found, err := d.screens.LoadSalary(ctx, sid)
	if err != nil {
		return nil, err
	}
	if found {
		return screen, nil
	}
	return d.Load(ctx, sid, token)
}
