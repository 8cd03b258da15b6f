package access

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
)

type AccessServiceImpl struct {
	access.AllowlistRepository
	employeeDirectory employee.Directory
	disabled          bool
}

// NewAccessService builds the allowlist predicate. With disabled set every punch is allowed.
func NewAccessService(repo access.AllowlistRepository, employeeDirectory employee.Directory, disabled bool) access.AccessService {
	if disabled {
		slog.Warn("attendance access check is disabled, every punch will be allowed")
	}
	return &AccessServiceImpl{
		AllowlistRepository: repo,
		employeeDirectory:   employeeDirectory,
		disabled:            disabled,
	}
}

// IsAllowed requires the source IP on the Wi-Fi allowlist and the local IP on the employee's device allowlist.
func (s *AccessServiceImpl) IsAllowed(ctx context.Context, employeeID string, sourceIP string, localIP string) (bool, error) {
	if s.disabled {
		return true, nil
	}

	sourceIP = attendance.NormalizeIP(sourceIP)
	localIP = attendance.NormalizeIP(localIP)
	if sourceIP == "" || localIP == "" {
		return false, nil
	}

	wifiOK, err := s.IsWifiAllowed(ctx, sourceIP)
	if err != nil {
		return false, fmt.Errorf("check wifi allowlist: %w", err)
	}
	if !wifiOK {
		slog.Info("punch rejected: source ip not allowed", "employee_id", employeeID, "source_ip", sourceIP)
		return false, nil
	}

	deviceOK, err := s.IsDeviceAllowed(ctx, employeeID, localIP)
	if err != nil {
		return false, fmt.Errorf("check device allowlist: %w", err)
	}
	if !deviceOK {
		slog.Info("punch rejected: device ip not allowed", "employee_id", employeeID, "local_ip", localIP)
		return false, nil
	}

	return true, nil
}

func (s *AccessServiceImpl) ListWifiIPs(ctx context.Context) ([]access.WifiIPResponse, error) {
	entries, err := s.ListWifi(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wifi ips: %w", err)
	}

	result := make([]access.WifiIPResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, access.WifiIPResponse{IP: e.IP, Label: e.Label, CreatedAt: e.CreatedAt})
	}
	return result, nil
}

func (s *AccessServiceImpl) AddWifiIP(ctx context.Context, req access.AddWifiIPRequest) (access.WifiIPResponse, error) {
	if err := req.Validate(); err != nil {
		return access.WifiIPResponse{}, err
	}

	entry, err := s.AddWifi(ctx, access.WifiIP{IP: req.IP, Label: req.Label})
	if err != nil {
		return access.WifiIPResponse{}, fmt.Errorf("add wifi ip: %w", err)
	}
	return access.WifiIPResponse{IP: entry.IP, Label: entry.Label, CreatedAt: entry.CreatedAt}, nil
}

func (s *AccessServiceImpl) DeleteWifiIP(ctx context.Context, ip string) error {
	if err := s.DeleteWifi(ctx, attendance.NormalizeIP(ip)); err != nil {
		return fmt.Errorf("delete wifi ip: %w", err)
	}
	return nil
}

func (s *AccessServiceImpl) ListDeviceIPs(ctx context.Context, employeeID string) ([]access.DeviceIPResponse, error) {
	if _, err := s.employeeDirectory.GetByID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	entries, err := s.ListDevice(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list device ips: %w", err)
	}

	result := make([]access.DeviceIPResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, access.DeviceIPResponse{EmployeeID: e.EmployeeID, IP: e.IP, Label: e.Label, CreatedAt: e.CreatedAt})
	}
	return result, nil
}

func (s *AccessServiceImpl) AddDeviceIP(ctx context.Context, req access.AddDeviceIPRequest) (access.DeviceIPResponse, error) {
	if err := req.Validate(); err != nil {
		return access.DeviceIPResponse{}, err
	}

	if _, err := s.employeeDirectory.GetByID(ctx, req.EmployeeID); err != nil {
		return access.DeviceIPResponse{}, fmt.Errorf("get employee: %w", err)
	}

	entry, err := s.AddDevice(ctx, access.DeviceIP{EmployeeID: req.EmployeeID, IP: req.IP, Label: req.Label})
	if err != nil {
		return access.DeviceIPResponse{}, fmt.Errorf("add device ip: %w", err)
	}
	return access.DeviceIPResponse{EmployeeID: entry.EmployeeID, IP: entry.IP, Label: entry.Label, CreatedAt: entry.CreatedAt}, nil
}

func (s *AccessServiceImpl) DeleteDeviceIP(ctx context.Context, employeeID string, ip string) error {
	if err := s.DeleteDevice(ctx, employeeID, attendance.NormalizeIP(ip)); err != nil {
		return fmt.Errorf("delete device ip: %w", err)
	}
	return nil
}
