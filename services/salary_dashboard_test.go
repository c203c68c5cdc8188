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

const slipsJSON = `[{"_id":"s1","user":"Asha","month":"March","days":20,"salary":2000,"pdfUrl":"/download/s1.pdf"}]`

func newSalaryDashboard(t *testing.T) (*SalaryDashboard, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(t)
	rdb, _ := newTestRedis(t)
	screens := NewScreenStateStore(rdb, 30*time.Minute)
	return NewSalaryDashboard(fb.client(), screens, logger.NewLogger(logger.ErrorLevel, io.Discard)), fb
}

func mountedSalaryDashboard(t *testing.T) (*SalaryDashboard, *fakeBackend) {
	t.Helper()
	d, fb := newSalaryDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)
	fb.reply("GET /api/salary-slips", http.StatusOK, slipsJSON)
	_, err := d.Load(context.Background(), "sid", "tok")
	require.NoError(t, err)
	return d, fb
}

func validSlipInput() *dto.SalarySlipInput {
	return &dto.SalarySlipInput{UserID: "e1", Month: "May", DaysWorked: "13"}
}

func TestSalaryDashboardLoad(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	require.Len(t, fb.Requests(), 2)

	screen, found, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, screen.Employees, 1)
	require.Len(t, screen.Slips, 1)
	require.Equal(t, "Asha", string(screen.Slips[0].Employee))
}

func TestSalaryDashboardLoadWithoutToken(t *testing.T) {
	d, fb := newSalaryDashboard(t)

	_, err := d.Load(context.Background(), "sid", "")
	require.ErrorIs(t, err, errors.ErrNoSession)
	require.Equal(t, "Unauthorized access. Please log in.", errors.Message(err, ""))
	requireNoRequests(t, fb)
}

func TestSalaryDashboardLoadUnauthorized(t *testing.T) {
	tests := []struct {
		name          string
		employeesCode int
		slipsCode     int
		message       string
	}{
		{"employees rejected", http.StatusUnauthorized, http.StatusOK, "Unauthorized access. Please log in again."},
		{"slips rejected", http.StatusOK, http.StatusForbidden, "Unauthorized access to salary slips"},
		{"both rejected", http.StatusUnauthorized, http.StatusUnauthorized, ""},
		{"slips rejected while employees fail", http.StatusInternalServerError, http.StatusUnauthorized, "Unauthorized access to salary slips"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, fb := newSalaryDashboard(t)
			fb.reply("GET /api/employees", tt.employeesCode, employeesJSON)
			fb.reply("GET /api/salary-slips", tt.slipsCode, slipsJSON)

			_, err := d.Load(context.Background(), "sid", "tok")
			require.True(t, errors.IsUnauthorized(err))
			if tt.message != "" {
				require.Equal(t, tt.message, errors.Message(err, ""))
			}

			_, found, err := d.Current(context.Background(), "sid")
			require.NoError(t, err)
			require.False(t, found)
		})
	}
}

func TestSalaryDashboardLoadNonArray(t *testing.T) {
	d, fb := newSalaryDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)
	fb.reply("GET /api/salary-slips", http.StatusOK, map[string]string{"status": "ok"})

	_, err := d.Load(context.Background(), "sid", "tok")
	require.False(t, errors.IsUnauthorized(err))
	require.Equal(t, "Salary slips data is not an array", errors.Message(err, ""))
}

func TestSalaryDashboardGenerateUsesFallbackSalary(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	fb.reply("POST /api/salary-slip", http.StatusCreated, map[string]interface{}{"_id": "s2", "salary": 0, "pdfUrl": "/download/s2.pdf"})

	slip, err := d.Generate(context.Background(), "sid", "tok", validSlipInput())
	require.NoError(t, err)
	require.True(t, slip.Estimated)
	require.Equal(t, "1300.00", slip.SalaryDisplay())
	require.Equal(t, "Asha", string(slip.Employee))

	screen, _, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.Len(t, screen.Slips, 2)
	require.Equal(t, "s2", screen.Slips[1].ID)
	require.True(t, screen.Slips[1].Estimated)

	// no re-fetch after generation
	require.Len(t, fb.Requests(), 3)
}

func TestSalaryDashboardGenerateUsesBackendSalary(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	fb.reply("POST /api/salary-slip", http.StatusCreated, map[string]interface{}{"_id": "s2", "salary": "1450.75"})

	slip, err := d.Generate(context.Background(), "sid", "tok", validSlipInput())
	require.NoError(t, err)
	require.False(t, slip.Estimated)
	require.Equal(t, "1450.75", slip.SalaryDisplay())
}

func TestSalaryDashboardGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *dto.SalarySlipInput)
		message string
	}{
		{"missing month", func(in *dto.SalarySlipInput) { in.Month = "" }, "Please fill all required fields"},
		{"missing employee", func(in *dto.SalarySlipInput) { in.UserID = "" }, "Please fill all required fields"},
		{"days above range", func(in *dto.SalarySlipInput) { in.DaysWorked = "32" }, "Invalid number of days"},
		{"negative days", func(in *dto.SalarySlipInput) { in.DaysWorked = "-1" }, "Invalid number of days"},
		{"fractional days", func(in *dto.SalarySlipInput) { in.DaysWorked = "2.5" }, "Invalid number of days"},
		{"negative bonus", func(in *dto.SalarySlipInput) { in.Bonus = "-10" }, "Bonus cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, fb := newSalaryDashboard(t)
			in := validSlipInput()
			tt.mutate(in)

			_, err := d.Generate(context.Background(), "sid", "tok", in)
			require.True(t, errors.IsValidation(err))
			require.Equal(t, tt.message, errors.Message(err, ""))
			requireNoRequests(t, fb)
		})
	}
}

func TestSalaryDashboardGenerateUnknownEmployee(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	in := validSlipInput()
	in.UserID = "ghost"

	_, err := d.Generate(context.Background(), "sid", "tok", in)
	require.Equal(t, "Employee not found", errors.Message(err, ""))
	require.Len(t, fb.Requests(), 2)
}

func TestSalaryDashboardGenerateBackendError(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	fb.reply("POST /api/salary-slip", http.StatusInternalServerError, "")

	_, err := d.Generate(context.Background(), "sid", "tok", validSlipInput())
	require.Equal(t, "Failed to generate salary slip", errors.Message(err, ""))

	screen, _, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.Len(t, screen.Slips, 1)
}

func TestSalaryDashboardDeleteWithoutConfirmation(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)

	_, err := d.Delete(context.Background(), "sid", "tok", "s1", false)
	require.True(t, errors.HasCode(err, errors.ErrCodeConfirmationRequired))
	require.Len(t, fb.Requests(), 2)
}

func TestSalaryDashboardDeleteRemovesRow(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	fb.reply("DELETE /api/salary-slips/s1", http.StatusOK, map[string]string{"message": "Salary slip deleted"})

	msg, err := d.Delete(context.Background(), "sid", "tok", "s1", true)
	require.NoError(t, err)
	require.Equal(t, "Salary slip deleted", msg)

	screen, _, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.Empty(t, screen.Slips)
	require.Len(t, fb.Requests(), 3)
}

func TestSalaryDashboardDeleteFailureKeepsRow(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	fb.reply("DELETE /api/salary-slips/s1", http.StatusBadRequest, map[string]string{"error": "Slip locked"})

	_, err := d.Delete(context.Background(), "sid", "tok", "s1", true)
	require.Equal(t, "Slip locked", errors.Message(err, ""))

	screen, _, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.Len(t, screen.Slips, 1)
}

func TestSalaryDashboardFindSlip(t *testing.T) {
	d, _ := mountedSalaryDashboard(t)

	slip, found, err := d.FindSlip(context.Background(), "sid", "s1.pdf")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Asha-March-salary-slip.pdf", slip.DownloadName())

	_, found, err = d.FindSlip(context.Background(), "sid", "other.pdf")
	require.NoError(t, err)
	require.False(t, found)
}

func TestSalaryDashboardExport(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)

	empty, fb := newSalaryDashboard(t)
	fb.reply("GET /api/employees", http.StatusOK, employeesJSON)
	fb.reply("GET /api/salary-slips", http.StatusOK, `[]`)
	_, err := empty.Export(context.Background(), "sid", "tok", now)
	require.Equal(t, "No salary slips to export", errors.Message(err, ""))

	d, _ := mountedSalaryDashboard(t)
	export, err := d.Export(context.Background(), "sid", "tok", now)
	require.NoError(t, err)
	require.Equal(t, "Salary_Slips_2026-10-17.xlsx", export.FileName)
}

func TestSalaryDashboardExportRemountsExpiredScreen(t *testing.T) {
	now := time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
	d, fb := mountedSalaryDashboard(t)
	require.NoError(t, d.screens.ClearScreen(context.Background(), ScreenSalary, "sid"))

	export, err := d.Export(context.Background(), "sid", "tok", now)
	require.NoError(t, err)
	require.NotEmpty(t, export.Content)
	require.Len(t, fb.Requests(), 4)
}

func TestSalaryDashboardGenerateThenDeletePatchesScreen(t *testing.T) {
	d, fb := mountedSalaryDashboard(t)
	fb.reply("POST /api/salary-slip", http.StatusCreated, map[string]interface{}{
		"_id": "s2", "salary": 1300, "pdfUrl": "/download/s2.pdf",
	})
	fb.reply("DELETE /api/salary-slips/s1", http.StatusOK, map[string]string{"message": "Salary slip deleted"})

	_, err := d.Generate(context.Background(), "sid", "tok", validSlipInput())
	require.NoError(t, err)
	_, err = d.Delete(context.Background(), "sid", "tok", "s1", true)
	require.NoError(t, err)

	screen, _, err := d.Current(context.Background(), "sid")
	require.NoError(t, err)
	require.Len(t, screen.Slips, 1)
	require.Equal(t, "s2", screen.Slips[0].ID)
}
