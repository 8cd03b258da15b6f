package access

import "errors"

var (
	ErrIPAlreadyAllowed = errors.New("ip address is already on the allowlist")
	ErrIPNotFound       = errors.New("ip address not found on the allowlist")
)
