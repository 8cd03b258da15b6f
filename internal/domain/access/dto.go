package access

import (
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type AddWifiIPRequest struct {
	IP    string `json:"ip"`
	Label string `json:"label"`
}

// Validate normalizes the address in place before checking it.
func (r *AddWifiIPRequest) Validate() error {
	r.IP = attendance.NormalizeIP(r.IP)
	if !validator.IsValidIP(r.IP) {
		return validator.Field("ip", "ip must be a valid IPv4 or IPv6 address")
	}
	return nil
}

type AddDeviceIPRequest struct {
	EmployeeID string `json:"-"`
	IP         string `json:"ip"`
	Label      string `json:"label"`
}

func (r *AddDeviceIPRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	r.IP = attendance.NormalizeIP(r.IP)
	if !validator.IsValidIP(r.IP) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip",
			Message: "ip must be a valid IPv4 or IPv6 address",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WifiIPResponse struct {
	IP        string    `json:"ip"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

type DeviceIPResponse struct {
	EmployeeID string    `json:"employee_id"`
	IP         string    `json:"ip"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}
