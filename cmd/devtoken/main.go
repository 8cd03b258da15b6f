// Command devtoken mints an access token signed with JWT_SECRET_KEY for local runs.
//
//	go run ./cmd/devtoken -role employee -code EMP001
//	go run ./cmd/devtoken -role admin -user admin-1
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/memory"
)

func main() {
	role := flag.String("role", string(user.RoleEmployee), "admin or employee")
	userID := flag.String("user", "", "user id, defaults to the employee id")
	code := flag.String("code", "", "employee code")
	employeeID := flag.String("employee-id", "", "employee id, derived from -code for seeded memory employees when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	principal, err := buildPrincipal(user.Role(*role), *userID, *code, *employeeID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(principal)
	if err != nil {
		log.Fatal("Failed to sign token: ", err)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}

func buildPrincipal(role user.Role, userID, code, employeeID string) (user.Principal, error) {
	if !role.IsValid() {
		return user.Principal{}, fmt.Errorf("unknown role %q", role)
	}

	p := user.Principal{Role: role, UserID: userID, EmployeeCode: code, EmployeeID: employeeID}
	if code != "" && p.EmployeeID == "" {
		p.EmployeeID = memory.SeedEmployeeID(code)
	}
	if role == user.RoleEmployee && !p.HasEmployee() {
		return user.Principal{}, fmt.Errorf("employee tokens need -code")
	}
	if p.UserID == "" {
		p.UserID = p.EmployeeID
	}
	if p.UserID == "" {
		return user.Principal{}, fmt.Errorf("admin tokens need -user")
	}
	return p, nil
}
