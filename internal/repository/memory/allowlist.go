package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
)

type allowlistRepositoryImpl struct {
	*Store
}

func NewAllowlistRepository(s *Store) access.AllowlistRepository {
	return &allowlistRepositoryImpl{Store: s}
}

func (r *allowlistRepositoryImpl) IsWifiAllowed(ctx context.Context, ip string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("check wifi allowlist"); err != nil {
		return false, err
	}
	_, ok := r.wifi[ip]
	return ok, nil
}

func (r *allowlistRepositoryImpl) IsDeviceAllowed(ctx context.Context, employeeID string, ip string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("check device allowlist"); err != nil {
		return false, err
	}
	_, ok := r.devices[deviceKey{employeeID: employeeID, ip: ip}]
	return ok, nil
}

func (r *allowlistRepositoryImpl) ListWifi(ctx context.Context) ([]access.WifiIP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("list wifi allowlist"); err != nil {
		return nil, err
	}

	result := make([]access.WifiIP, 0, len(r.wifi))
	for _, w := range r.wifi {
		result = append(result, w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IP < result[j].IP })
	return result, nil
}

func (r *allowlistRepositoryImpl) AddWifi(ctx context.Context, entry access.WifiIP) (access.WifiIP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("add wifi ip"); err != nil {
		return access.WifiIP{}, err
	}

	if _, exists := r.wifi[entry.IP]; exists {
		return access.WifiIP{}, access.ErrIPAlreadyAllowed
	}
	entry.CreatedAt = r.clock.Now()
	r.wifi[entry.IP] = entry
	return entry, nil
}

func (r *allowlistRepositoryImpl) DeleteWifi(ctx context.Context, ip string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete wifi ip"); err != nil {
		return err
	}

	if _, exists := r.wifi[ip]; !exists {
		return access.ErrIPNotFound
	}
	delete(r.wifi, ip)
	return nil
}

func (r *allowlistRepositoryImpl) ListDevice(ctx context.Context, employeeID string) ([]access.DeviceIP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("list device allowlist"); err != nil {
		return nil, err
	}

	result := make([]access.DeviceIP, 0)
	for k, d := range r.devices {
		if k.employeeID == employeeID {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].IP < result[j].IP })
	return result, nil
}

func (r *allowlistRepositoryImpl) AddDevice(ctx context.Context, entry access.DeviceIP) (access.DeviceIP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("add device ip"); err != nil {
		return access.DeviceIP{}, err
	}

	key := deviceKey{employeeID: entry.EmployeeID, ip: entry.IP}
	if _, exists := r.devices[key]; exists {
		return access.DeviceIP{}, access.ErrIPAlreadyAllowed
	}
	entry.CreatedAt = r.clock.Now()
	r.devices[key] = entry
	return entry, nil
}

func (r *allowlistRepositoryImpl) DeleteDevice(ctx context.Context, employeeID string, ip string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete device ip"); err != nil {
		return err
	}

	key := deviceKey{employeeID: employeeID, ip: ip}
	if _, exists := r.devices[key]; !exists {
		return access.ErrIPNotFound
	}
	delete(r.devices, key)
	return nil
}
