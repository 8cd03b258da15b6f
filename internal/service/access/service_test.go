package access

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccessService(t *testing.T, disabled bool) access.AccessService {
	t.Helper()
	store := memory.NewStore(clock.NewFixed(time.Date(2025, 8, 4, 4, 0, 0, 0, time.UTC)))
	store.PutEmployee(employee.Employee{ID: "emp-1", EmployeeCode: "E001", FullName: "Asha Rao"})
	return NewAccessService(memory.NewAllowlistRepository(store), memory.NewEmployeeRepository(store), disabled)
}

func TestIsAllowed_RequiresBothAllowlists(t *testing.T) {
	ctx := context.Background()
	svc := newTestAccessService(t, false)

	_, err := svc.AddWifiIP(ctx, access.AddWifiIPRequest{IP: "203.0.113.7", Label: "office"})
	require.NoError(t, err)

	ok, err := svc.IsAllowed(ctx, "emp-1", "203.0.113.7", "192.168.1.20")
	require.NoError(t, err)
	assert.False(t, ok, "device not registered yet")

	_, err = svc.AddDeviceIP(ctx, access.AddDeviceIPRequest{EmployeeID: "emp-1", IP: "192.168.1.20", Label: "laptop"})
	require.NoError(t, err)

	ok, err = svc.IsAllowed(ctx, "emp-1", "203.0.113.7", "192.168.1.20")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAllowed(ctx, "emp-1", "198.51.100.1", "192.168.1.20")
	require.NoError(t, err)
	assert.False(t, ok, "unknown network")

	ok, err = svc.IsAllowed(ctx, "emp-2", "203.0.113.7", "192.168.1.20")
	require.NoError(t, err)
	assert.False(t, ok, "device belongs to another employee")
}

func TestIsAllowed_NormalizesAddresses(t *testing.T) {
	ctx := context.Background()
	svc := newTestAccessService(t, false)

	_, err := svc.AddWifiIP(ctx, access.AddWifiIPRequest{IP: "::1"})
	require.NoError(t, err)
	_, err = svc.AddDeviceIP(ctx, access.AddDeviceIPRequest{EmployeeID: "emp-1", IP: " ::ffff:10.0.0.5 "})
	require.NoError(t, err)

	ok, err := svc.IsAllowed(ctx, "emp-1", "::ffff:127.0.0.1", "10.0.0.5")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAllowed_Disabled(t *testing.T) {
	svc := newTestAccessService(t, true)

	ok, err := svc.IsAllowed(context.Background(), "emp-1", "", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddWifiIP_Invalid(t *testing.T) {
	svc := newTestAccessService(t, false)

	_, err := svc.AddWifiIP(context.Background(), access.AddWifiIPRequest{IP: "not-an-ip"})
	assert.ErrorIs(t, err, validator.ErrInvalidInput)
}

func TestAddWifiIP_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestAccessService(t, false)

	_, err := svc.AddWifiIP(ctx, access.AddWifiIPRequest{IP: "127.0.0.1"})
	require.NoError(t, err)
	_, err = svc.AddWifiIP(ctx, access.AddWifiIPRequest{IP: "::1"})
	assert.ErrorIs(t, err, access.ErrIPAlreadyAllowed)
}

func TestDeviceIPs_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestAccessService(t, false)

	_, err := svc.AddDeviceIP(ctx, access.AddDeviceIPRequest{EmployeeID: "ghost", IP: "10.0.0.1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.ListDeviceIPs(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteWifiIP(t *testing.T) {
	ctx := context.Background()
	svc := newTestAccessService(t, false)

	_, err := svc.AddWifiIP(ctx, access.AddWifiIPRequest{IP: "10.1.1.1", Label: "lab"})
	require.NoError(t, err)

	list, err := svc.ListWifiIPs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "lab", list[0].Label)

	require.NoError(t, svc.DeleteWifiIP(ctx, "10.1.1.1"))
	assert.ErrorIs(t, svc.DeleteWifiIP(ctx, "10.1.1.1"), access.ErrIPNotFound)
}
