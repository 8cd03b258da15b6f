package access

import "context"

// Predicate decides whether a punch may proceed from the given addresses.
type Predicate interface {
	IsAllowed(ctx context.Context, employeeID string, sourceIP string, localIP string) (bool, error)
}

type AccessService interface {
	Predicate

	ListWifiIPs(ctx context.Context) ([]WifiIPResponse, error)
	AddWifiIP(ctx context.Context, req AddWifiIPRequest) (WifiIPResponse, error)
	DeleteWifiIP(ctx context.Context, ip string) error

	ListDeviceIPs(ctx context.Context, employeeID string) ([]DeviceIPResponse, error)
	AddDeviceIP(ctx context.Context, req AddDeviceIPRequest) (DeviceIPResponse, error)
	DeleteDeviceIP(ctx context.Context, employeeID string, ip string) error
}
