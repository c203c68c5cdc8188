package services

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"accounts/dto"
	"accounts/errors"
	"accounts/services/logger"

	"github.com/stretchr/testify/require"
)

const employeesJSON = `[{"_id":"e1","username":"Asha","email":"asha@example.com","baseSalary":2600,"employeeid":"E-1"}]`

func newEmployeeDashboard(t *testing.T) (*EmployeeDashboard, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(t)
	rdb, _ := newTestRedis(t)
	screens := NewScreenStateStore(rdb, 30*time.Minute)
	return NewEmployeeDashboard(fb.client(), screens, logger.NewLogger(logger.ErrorLevel, io.Discard)), fb
}

func validEmployeeInput() *dto.EmployeeInput {
	return &dto.EmployeeInput{
		Username:   " Asha ",
		Email:      "asha@example.com",
		BaseSalary: "2600",
		EmployeeID: "E-1",
		JoinDate:   "2024-03-05",
	}
}

func TestEmployeeDashboardLoadStoresScreen(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)
	ctx := context.Background()

	_, found, err := d.Current(ctx, "sid")
	require.NoError(t, err)
	require.False(t, found)

	employees, err := d.Load(ctx, "sid", "tok")
	require.NoError(t, err)
	require.Len(t, employees, 1)

	current, found, err := d.Current(ctx, "sid")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Asha", current[0].Username)

	emp, err := d.Find(ctx, "sid", "e1")
	require.NoError(t, err)
	require.Equal(t, "E-1", emp.EmployeeID)

	_, err = d.Find(ctx, "sid", "missing")
	require.Equal(t, "Employee not found", errors.Message(err, ""))
}

func TestEmployeeDashboardEmptyListIsStored(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, `[]`)

	_, err := d.Load(context.Background(), "sid", "tok")
	require.NoError(t, err)

	current, found, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, current)
}

func TestEmployeeDashboardSaveRejectsInvalidInputWithoutRequest(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *dto.EmployeeInput)
		message string
	}{
		{"missing username", func(in *dto.EmployeeInput) { in.Username = "" }, "Username, email, base salary, and employee ID are required"},
		{"missing email", func(in *dto.EmployeeInput) { in.Email = "  " }, "Username, email, base salary, and employee ID are required"},
		{"missing salary", func(in *dto.EmployeeInput) { in.BaseSalary = "" }, "Username, email, base salary, and employee ID are required"},
		{"missing employee id", func(in *dto.EmployeeInput) { in.EmployeeID = "" }, "Username, email, base salary, and employee ID are required"},
		{"bad email", func(in *dto.EmployeeInput) { in.Email = "a@b" }, "Invalid email format"},
		{"zero salary", func(in *dto.EmployeeInput) { in.BaseSalary = "0" }, "Base salary must be a positive number"},
		{"text salary", func(in *dto.EmployeeInput) { in.BaseSalary = "abc" }, "Base salary must be a positive number"},
		{"bad join date", func(in *dto.EmployeeInput) { in.JoinDate = "someday" }, "Invalid join date format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, fb := newEmployeeDashboard(t)
			in := validEmployeeInput()
			tt.mutate(in)

			err := d.Save(context.Background(), "sid", "tok", "", in)
			require.True(t, errors.IsValidation(err))
			require.Equal(t, tt.message, errors.Message(err, ""))
			requireNoRequests(t, fb)
		})
	}
}

func TestEmployeeDashboardAddThenRefetch(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("POST /api/add-employees", http.StatusCreated, map[string]interface{}{"data": map[string]string{"_id": "e1"}})
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)

	require.NoError(t, d.Save(context.Background(), "sid", "tok", "", validEmployeeInput()))

	reqs := fb.Requests()
	require.Len(t, reqs, 2)
	require.Equal(t, "POST", reqs[0].Method)
	require.Equal(t, "Asha", reqs[0].Body["username"])
	require.Equal(t, "GET", reqs[1].Method)

	current, found, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, current, 1)
}

func TestEmployeeDashboardEditUsesPut(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("PUT /api/edit-employees/e1", http.StatusOK, map[string]interface{}{"data": map[string]string{"_id": "e1"}})
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)

	require.NoError(t, d.Save(context.Background(), "sid", "tok", "e1", validEmployeeInput()))
	require.Equal(t, "/api/edit-employees/e1", fb.Requests()[0].Path)
}

func TestEmployeeDashboardSaveUnauthorized(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("POST /api/add-employees", http.StatusUnauthorized, "")

	err := d.Save(context.Background(), "sid", "tok", "", validEmployeeInput())
	require.True(t, errors.IsUnauthorized(err))
}

func TestEmployeeDashboardReloadFailureKeepsSuccess(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)
	_, err := d.Load(context.Background(), "sid", "tok")
	require.NoError(t, err)

	fb.reply("DELETE /api/delete-employees/e1", http.StatusOK, map[string]string{"message": "ok"})
	fb.reply("GET /api/employees", http.StatusInternalServerError, "")

	require.NoError(t, d.Delete(context.Background(), "sid", "tok", "e1", "DELETE"))

	_, found, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.False(t, found)
}

func TestEmployeeDashboardDeleteRequiresPhrase(t *testing.T) {
	for _, phrase := range []string{"", "delete", "DELETE ", "yes"} {
		d, fb := newEmployeeDashboard(t)

		err := d.Delete(context.Background(), "sid", "tok", "e1", phrase)
		require.True(t, errors.HasCode(err, errors.ErrCodeConfirmationRequired), phrase)
		require.Equal(t, "Please type 'DELETE' to confirm!", errors.Message(err, ""))
		requireNoRequests(t, fb)
	}
}

func TestEmployeeDashboardDeleteRequiresID(t *testing.T) {
	d, fb := newEmployeeDashboard(t)

	err := d.Delete(context.Background(), "sid", "tok", "", "DELETE")
	require.Equal(t, "No user ID provided for deletion", errors.Message(err, ""))
	requireNoRequests(t, fb)
}

func TestEmployeeDashboardDeleteThenRefetch(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("DELETE /api/delete-employees/e2", http.StatusOK, map[string]string{"message": "Employee deleted"})
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)

	require.NoError(t, d.Delete(context.Background(), "sid", "tok", "e2", "DELETE"))
	require.Len(t, fb.Requests(), 2)
}

func TestEmployeeDashboardExport(t *testing.T) {
	d, fb := newEmployeeDashboard(t)

	fb.reply("GET /api/employees", http.StatusOK, `[]`)
	_, err := d.Load(context.Background(), "sid", "tok")
	require.NoError(t, err)
	_, err = d.Export(context.Background(), "sid", "tok")
	require.True(t, errors.HasCode(err, errors.ErrCodeNothingToExport))
	require.Equal(t, "No employees to export", errors.Message(err, ""))

	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)
	_, err = d.Load(context.Background(), "sid", "tok")
	require.NoError(t, err)

	export, err := d.Export(context.Background(), "sid", "tok")
	require.NoError(t, err)
	require.Equal(t, "Employees.xlsx", export.FileName)
	require.NotEmpty(t, export.Content)
	require.Len(t, fb.Requests(), 2)
}

func TestEmployeeDashboardExportRemountsExpiredScreen(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)

	export, err := d.Export(context.Background(), "sid", "tok")
	require.NoError(t, err)
	require.Equal(t, "Employees.xlsx", export.FileName)
	require.Len(t, fb.Requests(), 1)

	employees, found, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, employees, 1)
}

func TestEmployeeDashboardExportExpiredScreenUnauthorized(t *testing.T) {
	d, fb := newEmployeeDashboard(t)
	fb.reply("GET /api/employees", http.StatusUnauthorized, "")

	_, err := d.Export(context.Background(), "sid", "tok")
	require.True(t, errors.IsUnauthorized(err))
}
