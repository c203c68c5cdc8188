package services

import (
	"context"

	"accounts/dto"
	"accounts/errors"
	"accounts/models"
	"accounts/services/logger"
	"accounts/validator"
)

// EmployeeBackend là các lời gọi backend mà màn hình nhân viên cần
type EmployeeBackend interface {
	ListEmployees(ctx context.Context, token string) ([]models.Employee, error)
	AddEmployee(ctx context.Context, token string, payload dto.EmployeePayload) error
	EditEmployee(ctx context.Context, token, id string, payload dto.EmployeePayload) error
	DeleteEmployee(ctx context.Context, token, id string) error
}

type EmployeeDashboard struct {
	backend EmployeeBackend
	screens *ScreenStateStore
	log     logger.Logger
}

func NewEmployeeDashboard(backend EmployeeBackend, screens *ScreenStateStore, log logger.Logger) *EmployeeDashboard {
	return &EmployeeDashboard{backend: backend, screens: screens, log: log}
}

// Load tải lại toàn bộ danh sách nhân viên và lưu thành trạng thái màn hình
func (d *EmployeeDashboard) Load(ctx context.Context, sid, token string) ([]models.Employee, error) {
	employees, err := d.backend.ListEmployees(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := d.screens.SaveEmployees(ctx, sid, employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// Current trả về danh sách đã tải; found = false khi màn hình cần mount lại
func (d *EmployeeDashboard) Current(ctx context.Context, sid string) ([]models.Employee, bool, error) {
	return d.screens.LoadEmployees(ctx, sid)
}

// Find tìm nhân viên trong trạng thái màn hình
func (d *EmployeeDashboard) Find(ctx context.Context, sid, id string) (*models.Employee, error) {
	employees, _, err := d.Current(ctx, sid)
	if err != nil {
		return nil, err
	}
	emp, ok := models.FindEmployee(employees, id)
	if !ok {
		return nil, errors.NewAppError(errors.ErrCodeNotFound, "Employee not found", nil)
	}
	return emp, nil
}

// Save thêm mới (editingID rỗng) hoặc cập nhật nhân viên rồi tải lại danh sách.
// Dữ liệu không hợp lệ bị từ chối trước khi gửi request.
func (d *EmployeeDashboard) Save(ctx context.Context, sid, token, editingID string, in *dto.EmployeeInput) error {
	in.Normalize()
	if err := validator.ValidateEmployee(in); err != nil {
		return err
	}

	payload := in.Payload()
	var err error
	if editingID == "" {
		err = d.backend.AddEmployee(ctx, token, payload)
	} else {
		err = d.backend.EditEmployee(ctx, token, editingID, payload)
	}
	if err != nil {
		return err
	}

	return d.reload(ctx, sid, token)
}

// Delete xoá nhân viên sau khi người dùng gõ đúng cụm xác nhận
func (d *EmployeeDashboard) Delete(ctx context.Context, sid, token, id, confirmation string) error {
	if err := validator.ValidateDeleteConfirmation(confirmation); err != nil {
		return err
	}
	if id == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "No user ID provided for deletion", nil)
	}

	if err := d.backend.DeleteEmployee(ctx, token, id); err != nil {
		return err
	}
	return d.reload(ctx, sid, token)
}

// reload chạy sau một thao tác đã thành công; chỉ lỗi phiên hết hạn mới được trả về
func (d *EmployeeDashboard) reload(ctx context.Context, sid, token string) error {
	if _, err := d.Load(ctx, sid, token); err != nil {
		if errors.IsUnauthorized(err) {
			return err
		}
		d.log.Warn("reload employees after change failed: %v", err)
		if clearErr := d.screens.ClearScreen(ctx, ScreenEmployees, sid); clearErr != nil {
			d.log.Error("clear stale employees screen: %v", clearErr)
		}
	}
	return nil
}

// Export dựng Employees.xlsx từ danh sách đang hiển thị, mount lại nếu trạng thái đã hết hạn
func (d *EmployeeDashboard) Export(ctx context.Context, sid, token string) (*Export, error) {
	employees, err := d.current(ctx, sid, token)
	if err != nil {
		return nil, err
	}
	return EmployeesWorkbook(employees)
}

func (d *EmployeeDashboard) current(ctx context.Context, sid, token string) ([]models.Employee, error) {
	employees, found, err := d.screens.LoadEmployees(ctx, sid)
	if err != nil {
		return nil, err
	}
	if found {
		return employees, nil
	}
	return d.Load(ctx, sid, token)
}
