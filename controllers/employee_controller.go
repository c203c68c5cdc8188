package controllers

import (
	"net/http"

	"accounts/constants"
	"accounts/dto"
	"accounts/errors"
	"accounts/middleware"
	"accounts/models"
	"accounts/response"
	"accounts/services"
	"accounts/services/notification"

	"github.com/gin-gonic/gin"
)

const employeesCurrentPath = constants.PathEmployees + "/current"

type EmployeeController struct {
	Base
	dashboard *services.EmployeeDashboard
}

func NewEmployeeController(base Base, dashboard *services.EmployeeDashboard) EmployeeController {
	return EmployeeController{Base: base, dashboard: dashboard}
}

// Mount tải danh sách nhân viên từ backend rồi hiển thị
func (e EmployeeController) Mount(c *gin.Context) {
	session := middleware.CurrentSession(c)
	employees, err := e.dashboard.Load(c.Request.Context(), middleware.SessionID(c), session.Token)
	if err != nil {
		if errors.IsUnauthorized(err) {
			e.expire(c, err)
			return
		}
		if isStorageError(err) {
			e.storageFailed(c, err)
			return
		}
		message := errors.Message(err, "Failed to fetch employees")
		e.notify(c, notification.Error(message))
		e.render(c, http.StatusBadGateway, "employees", gin.H{"Title": "Employees", "Error": message})
		return
	}

	e.render(c, http.StatusOK, "employees", gin.H{"Title": "Employees", "Employees": employees})
}

// Current hiển thị lại danh sách đã tải sau mỗi thao tác
func (e EmployeeController) Current(c *gin.Context) {
	employees, ok := e.current(c)
	if !ok {
		return
	}
	e.render(c, http.StatusOK, "employees", gin.H{"Title": "Employees", "Employees": employees})
}

// current lấy trạng thái màn hình; ok = false khi response đã được ghi
func (e EmployeeController) current(c *gin.Context) ([]models.Employee, bool) {
	employees, found, err := e.dashboard.Current(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		e.storageFailed(c, err)
		return nil, false
	}
	if !found {
		response.Redirect(c, constants.PathEmployees)
		return nil, false
	}
	return employees, true
}

func (e EmployeeController) find(c *gin.Context) (*models.Employee, bool) {
	employees, ok := e.current(c)
	if !ok {
		return nil, false
	}
	emp, found := models.FindEmployee(employees, c.Param("id"))
	if !found {
		response.ErrorPage(c, http.StatusNotFound, "Employee not found")
		return nil, false
	}
	return emp, true
}

func (e EmployeeController) New(c *gin.Context) {
	e.renderForm(c, http.StatusOK, "", &dto.EmployeeInput{})
}

func (e EmployeeController) Create(c *gin.Context) {
	e.save(c, "")
}

func (e EmployeeController) Show(c *gin.Context) {
	emp, ok := e.find(c)
	if !ok {
		return
	}
	e.render(c, http.StatusOK, "employee_view", gin.H{"Title": emp.Username, "Employee": emp})
}

func (e EmployeeController) Edit(c *gin.Context) {
	emp, ok := e.find(c)
	if !ok {
		return
	}
	e.renderForm(c, http.StatusOK, emp.ID, &dto.EmployeeInput{
		Username:    emp.Username,
		Email:       emp.Email,
		BaseSalary:  emp.BaseSalary.String(),
		EmployeeID:  emp.EmployeeID,
		JoinDate:    joinDateInputValue(emp.JoinDate),
		PAN:         emp.PAN,
		Aadhaar:     emp.Aadhaar,
		Designation: emp.Designation,
	})
}

func (e EmployeeController) Update(c *gin.Context) {
	e.save(c, c.Param("id"))
}

// save là handler chung cho thêm mới và cập nhật
func (e EmployeeController) save(c *gin.Context, editingID string) {
	var input dto.EmployeeInput
	_ = c.ShouldBind(&input)

	session := middleware.CurrentSession(c)
	err := e.dashboard.Save(c.Request.Context(), middleware.SessionID(c), session.Token, editingID, &input)
	if err != nil {
		if errors.IsUnauthorized(err) {
			e.expire(c, err)
			return
		}
		if isStorageError(err) {
			e.storageFailed(c, err)
			return
		}
		e.notify(c, notification.Error(errors.Message(err, "Failed to save employee")))
		e.renderForm(c, failureStatus(err), editingID, &input)
		return
	}

	message := "Employee added successfully"
	if editingID != "" {
		message = "Employee updated successfully"
	}
	e.redirect(c, employeesCurrentPath, notification.Success(message))
}

func (e EmployeeController) renderForm(c *gin.Context, status int, editingID string, input *dto.EmployeeInput) {
	title := "Add Employee"
	action := constants.PathEmployees
	if editingID != "" {
		title = "Edit Employee"
		action = constants.PathEmployees + "/" + editingID
	}
	e.render(c, status, "employee_form", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   input,
	})
}

func (e EmployeeController) ConfirmDelete(c *gin.Context) {
	emp, ok := e.find(c)
	if !ok {
		return
	}
	e.render(c, http.StatusOK, "employee_delete", gin.H{
		"Title":    "Delete Employee",
		"Employee": emp,
		"Phrase":   constants.DeleteConfirmationPhrase,
	})
}

func (e EmployeeController) Delete(c *gin.Context) {
	id := c.Param("id")
	confirmation := c.PostForm("confirmation")

	session := middleware.CurrentSession(c)
	err := e.dashboard.Delete(c.Request.Context(), middleware.SessionID(c), session.Token, id, confirmation)
	if err != nil {
		switch {
		case errors.IsUnauthorized(err):
			e.expire(c, err)
		case isStorageError(err):
			e.storageFailed(c, err)
		case errors.HasCode(err, errors.ErrCodeConfirmationRequired):
			e.notify(c, notification.Error(errors.Message(err, "")))
			emp, ok := e.find(c)
			if !ok {
				return
			}
			e.render(c, http.StatusUnprocessableEntity, "employee_delete", gin.H{
				"Title":    "Delete Employee",
				"Employee": emp,
				"Phrase":   constants.DeleteConfirmationPhrase,
			})
		default:
			e.redirect(c, employeesCurrentPath, notification.Error(errors.Message(err, "Failed to delete employee")))
		}
		return
	}

	e.redirect(c, employeesCurrentPath, notification.Success("Employee deleted successfully"))
}

func (e EmployeeController) Export(c *gin.Context) {
	session := middleware.CurrentSession(c)
	export, err := e.dashboard.Export(c.Request.Context(), middleware.SessionID(c), session.Token)
	if err != nil {
		switch {
		case errors.IsUnauthorized(err):
			e.expire(c, err)
		case errors.HasCode(err, errors.ErrCodeNothingToExport):
			e.redirect(c, employeesCurrentPath, notification.Warning(errors.Message(err, "")))
		case isStorageError(err):
			e.storageFailed(c, err)
		default:
			e.redirect(c, employeesCurrentPath, notification.Error("Failed to export to Excel: "+errors.Message(err, "")))
		}
		return
	}

	e.notify(c, notification.Success("Employees exported to Excel successfully"))
	response.Attachment(c, export.FileName, xlsxContentType, export.Content)
}

// joinDateInputValue đổi ngày vào làm sang định dạng của <input type="date">
func joinDateInputValue(s string) string {
	t, ok := models.ParseJoinDate(s)
	if !ok {
		return s
	}
	return t.Format("2006-01-02")
}
