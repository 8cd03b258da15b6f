package access

import "time"

// WifiIP is a network egress address punches may originate from.
type WifiIP struct {
	IP        string
	Label     string
	CreatedAt time.Time
}

// DeviceIP is a local address registered for one employee's device.
type DeviceIP struct {
	EmployeeID string
	IP         string
	Label      string
	CreatedAt  time.Time
}
