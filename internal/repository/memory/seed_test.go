package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeed(t *testing.T) {
	employees, err := ParseSeed([]string{"EMP001=Asha Rao", " EMP002 = Vikram Shah "})
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "EMP002", employees[1].EmployeeCode)
	assert.Equal(t, "Vikram Shah", employees[1].FullName)
	assert.Equal(t, SeedEmployeeID("EMP001"), employees[0].ID)
	assert.NoError(t, uuid.Validate(employees[0].ID))
	assert.NotEqual(t, employees[0].ID, employees[1].ID)
}

func TestParseSeed_Invalid(t *testing.T) {
	for _, entries := range [][]string{
		{"EMP001"},
		{"=Nameless"},
		{"EMP001="},
		{"EMP001=A", "EMP001=B"},
	} {
		_, err := ParseSeed(entries)
		assert.Error(t, err, entries)
	}
}

func TestSeed_PopulatesDirectory(t *testing.T) {
	store := NewStore(clock.NewFixed(time.Date(2025, 8, 4, 3, 30, 0, 0, time.UTC)))
	employees, err := ParseSeed([]string{"EMP001=Asha Rao"})
	require.NoError(t, err)
	store.Seed(employees)

	got, err := NewEmployeeRepository(store).LookupByCode(context.Background(), "EMP001")
	require.NoError(t, err)
	assert.Equal(t, SeedEmployeeID("EMP001"), got.ID)
}
