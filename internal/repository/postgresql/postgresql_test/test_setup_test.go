package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the migrations.
// The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, 4)
	require.NoError(t, err, "failed to connect to test database")

	require.NoError(t, database.Migrate(ctx, db))

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)

	return setup
}

// TruncateAllTables clears every table except the reserved attendance KPI.
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"kpi_scores",
		"attendances",
		"employee_schedules",
		"feedback",
		"self_assessments",
		"department_positions",
		"departments",
		"employees",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM kpis WHERE id <> 'K_AUTO_ATT'"); err != nil {
		return fmt.Errorf("failed to clear kpis: %w", err)
	}

	return tx.Commit(ctx)
}

// InsertEmployee adds a directory row directly, bypassing the repository.
func (s *TestDatabaseSetup) InsertEmployee(t *testing.T, id, name, department, role, status string) {
	t.Helper()

	_, err := s.DB.Exec(context.Background(),
		`INSERT INTO employees (id, name, email, department, role, status) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, id+"@hotel.test", department, role, status,
	)
	require.NoError(t, err)
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
