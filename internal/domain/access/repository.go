package access

import "context"

// AllowlistRepository stores normalized IP text.
type AllowlistRepository interface {
	IsWifiAllowed(ctx context.Context, ip string) (bool, error)
	IsDeviceAllowed(ctx context.Context, employeeID string, ip string) (bool, error)

	ListWifi(ctx context.Context) ([]WifiIP, error)
	AddWifi(ctx context.Context, entry WifiIP) (WifiIP, error)
	DeleteWifi(ctx context.Context, ip string) error

	ListDevice(ctx context.Context, employeeID string) ([]DeviceIP, error)
	AddDevice(ctx context.Context, entry DeviceIP) (DeviceIP, error)
	DeleteDevice(ctx context.Context, employeeID string, ip string) error
}
