package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrEmployeeProfileRequired = errors.New("employee profile required")
)
