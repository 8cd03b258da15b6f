package postgresql

import (
	"context"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/access"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type allowlistRepository struct {
	db *database.DB
}

func NewAllowlistRepository(db *database.DB) access.AllowlistRepository {
	return &allowlistRepository{db: db}
}

func (r *allowlistRepository) IsWifiAllowed(ctx context.Context, ip string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM wifi_allowlist WHERE ip = $1)`, ip).Scan(&exists); err != nil {
		return false, wrapErr("failed to check wifi allowlist", err)
	}
	return exists, nil
}

func (r *allowlistRepository) IsDeviceAllowed(ctx context.Context, employeeID string, ip string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM device_allowlist WHERE employee_id = $1 AND ip = $2)`,
		employeeID, ip,
	).Scan(&exists)
	if err != nil {
		return false, wrapErr("failed to check device allowlist", err)
	}
	return exists, nil
}

func (r *allowlistRepository) ListWifi(ctx context.Context) ([]access.WifiIP, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT ip, label, created_at FROM wifi_allowlist ORDER BY ip`)
	if err != nil {
		return nil, wrapErr("failed to list wifi allowlist", err)
	}
	defer rows.Close()

	result := make([]access.WifiIP, 0)
	for rows.Next() {
		var w access.WifiIP
		if err := rows.Scan(&w.IP, &w.Label, &w.CreatedAt); err != nil {
			return nil, wrapErr("failed to scan wifi ip", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate wifi allowlist", err)
	}
	return result, nil
}

func (r *allowlistRepository) AddWifi(ctx context.Context, entry access.WifiIP) (access.WifiIP, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx,
		`INSERT INTO wifi_allowlist (ip, label) VALUES ($1, $2) RETURNING created_at`,
		entry.IP, entry.Label,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return access.WifiIP{}, access.ErrIPAlreadyAllowed
		}
		return access.WifiIP{}, wrapErr("failed to add wifi ip", err)
	}
	return entry, nil
}

func (r *allowlistRepository) DeleteWifi(ctx context.Context, ip string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM wifi_allowlist WHERE ip = $1`, ip)
	if err != nil {
		return wrapErr("failed to delete wifi ip", err)
	}
	if tag.RowsAffected() == 0 {
		return access.ErrIPNotFound
	}
	return nil
}

func (r *allowlistRepository) ListDevice(ctx context.Context, employeeID string) ([]access.DeviceIP, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT employee_id, ip, label, created_at FROM device_allowlist WHERE employee_id = $1 ORDER BY ip`,
		employeeID,
	)
	if err != nil {
		return nil, wrapErr("failed to list device allowlist", err)
	}
	defer rows.Close()

	result := make([]access.DeviceIP, 0)
	for rows.Next() {
		var d access.DeviceIP
		if err := rows.Scan(&d.EmployeeID, &d.IP, &d.Label, &d.CreatedAt); err != nil {
			return nil, wrapErr("failed to scan device ip", err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate device allowlist", err)
	}
	return result, nil
}

func (r *allowlistRepository) AddDevice(ctx context.Context, entry access.DeviceIP) (access.DeviceIP, error) {
	q := GetQuerier(ctx, r.db)

	err := q.QueryRow(ctx,
		`INSERT INTO device_allowlist (employee_id, ip, label) VALUES ($1, $2, $3) RETURNING created_at`,
		entry.EmployeeID, entry.IP, entry.Label,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return access.DeviceIP{}, access.ErrIPAlreadyAllowed
		}
		return access.DeviceIP{}, wrapErr("failed to add device ip", err)
	}
	return entry, nil
}

func (r *allowlistRepository) DeleteDevice(ctx context.Context, employeeID string, ip string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM device_allowlist WHERE employee_id = $1 AND ip = $2`, employeeID, ip)
	if err != nil {
		return wrapErr("failed to delete device ip", err)
	}
	if tag.RowsAffected() == 0 {
		return access.ErrIPNotFound
	}
	return nil
}
