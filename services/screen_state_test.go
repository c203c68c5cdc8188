package services

import (
	"context"
	"testing"
	"time"

	"accounts/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestScreenStateRoundTripAndExpiry(t *testing.T) {
	rdb, mr := newTestRedis(t)
	store := NewScreenStateStore(rdb, 30*time.Minute)
	ctx := context.Background()

	screen := &SalaryScreen{
		Employees: []models.Employee{{ID: "e1", Username: "Asha", BaseSalary: models.NewFlexDecimal(decimal.NewFromInt(2600))}},
		Slips:     []models.SalarySlip{{ID: "s1", Employee: "Asha", Month: "May", DaysWorked: 13, Salary: models.NewFlexDecimal(decimal.RequireFromString("1300.00")), Estimated: true}},
	}
	require.NoError(t, store.SaveSalary(ctx, "sid", screen))

	got, found, err := store.LoadSalary(ctx, "sid")
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, got.Slips[0].Estimated)
	require.Equal(t, "1300.00", got.Slips[0].SalaryDisplay())
	require.True(t, got.Employees[0].BaseSalary.Equal(decimal.NewFromInt(2600)))

	mr.FastForward(31 * time.Minute)
	_, found, err = store.LoadSalary(ctx, "sid")
	require.NoError(t, err)
	require.False(t, found)
}

func TestScreenStateIsolatedPerSession(t *testing.T) {
	rdb, _ := newTestRedis(t)
	store := NewScreenStateStore(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveEmployees(ctx, "a", []models.Employee{{ID: "e1"}}))
	require.NoError(t, store.SaveEmployees(ctx, "b", nil))

	a, _, err := store.LoadEmployees(ctx, "a")
	require.NoError(t, err)
	require.Len(t, a, 1)

	b, found, err := store.LoadEmployees(ctx, "b")
	require.NoError(t, err)
	require.True(t, found)
	require.Empty(t, b)

	require.NoError(t, store.ClearScreen(ctx, ScreenEmployees, "a"))
	_, found, err = store.LoadEmployees(ctx, "a")
	require.NoError(t, err)
	require.False(t, found)
}

func TestUpdateSalaryMissingScreen(t *testing.T) {
	rdb, mr := newTestRedis(t)
	store := NewScreenStateStore(rdb, time.Minute)

	called := false
	found, err := store.UpdateSalary(context.Background(), "sid", func(*SalaryScreen) { called = true })
	require.NoError(t, err)
	require.False(t, found)
	require.False(t, called)
	require.False(t, mr.Exists(screenKey(ScreenSalary, "sid")))
}

func TestUpdateSalaryRetriesOnConcurrentWrite(t *testing.T) {
	rdb, mr := newTestRedis(t)
	store := NewScreenStateStore(rdb, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveSalary(ctx, "sid", &SalaryScreen{
		Slips: []models.SalarySlip{{ID: "s1"}, {ID: "s2"}},
	}))

	attempts := 0
	found, err := store.UpdateSalary(ctx, "sid", func(screen *SalaryScreen) {
		attempts++
		if attempts == 1 {
			// tab khác xoá s1 trong lúc request này đang sửa
			require.NoError(t, store.SaveSalary(ctx, "sid", &SalaryScreen{
				Slips: []models.SalarySlip{{ID: "s2"}},
			}))
		}
		screen.Slips = append(screen.Slips, models.SalarySlip{ID: "s3"})
	})
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, attempts)

	got, _, err := store.LoadSalary(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, got.Slips, 2)
	require.Equal(t, "s2", got.Slips[0].ID)
	require.Equal(t, "s3", got.Slips[1].ID)
	require.True(t, mr.TTL(screenKey(ScreenSalary, "sid")) > 0)
}
