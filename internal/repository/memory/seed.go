package memory

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

var seedNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("attendance-backend-go/employees"))

// SeedEmployeeID derives the stable id a seeded employee code gets, so tokens
// minted for a code keep working across restarts.
func SeedEmployeeID(code string) string {
	return uuid.NewSHA1(seedNamespace, []byte(code)).String()
}

// ParseSeed reads "CODE=Full Name" entries.
func ParseSeed(entries []string) ([]employee.Employee, error) {
	seen := make(map[string]bool, len(entries))
	out := make([]employee.Employee, 0, len(entries))
	for _, entry := range entries {
		code, name, ok := strings.Cut(entry, "=")
		code, name = strings.TrimSpace(code), strings.TrimSpace(name)
		if !ok || code == "" || name == "" {
			return nil, fmt.Errorf("invalid seed entry %q: expected CODE=Full Name", entry)
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate seed employee code %q", code)
		}
		seen[code] = true
		out = append(out, employee.Employee{ID: SeedEmployeeID(code), EmployeeCode: code, FullName: name})
	}
	return out, nil
}

// Seed loads the directory entries into the store.
func (s *Store) Seed(employees []employee.Employee) {
	for _, e := range employees {
		s.PutEmployee(e)
	}
}
