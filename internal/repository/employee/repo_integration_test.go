//go:build integration

package employee

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kailas-cloud/hrsearch/internal/db/postgres"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "hr",
				"POSTGRES_PASSWORD": "hr",
				"POSTGRES_DB":       "hr",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://hr:hr@%s:%s/hr?sslmode=disable", host, port.Port())
}

func TestRepo_Integration(t *testing.T) {
	dsn := startPostgres(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.Config{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, postgres.WaitForReady(ctx, pool, 30*time.Second))
	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "schema must be rerunnable")

	_, err = pool.Exec(ctx, `
		INSERT INTO employees (id, first_name, last_name, position, department, experience_years, bio, level)
		VALUES (1, 'Anna', 'Ivanova', 'Data Scientist', 'R&D', 5, 'ML in production', 3),
		       (2, 'Boris', 'Petrov', 'Backend', 'R&D', 1, '', 1);
		INSERT INTO employees (id, first_name, last_name, email)
		VALUES (3, 'Ilya', 'Orlov', 'ilya@corp.example');
		INSERT INTO skills (id, name) VALUES (1, 'Python'), (2, 'Java');
		INSERT INTO employee_skills VALUES (1, 1), (2, 2);
		INSERT INTO work_experiences (employee_id, company_name, position, start_date, end_date)
		VALUES (1, 'Yandex', 'Analyst', '2019-01-01', '2021-06-01');`)
	require.NoError(t, err)

	repo := New(pool)

	rankable, err := repo.ListRankable(ctx)
	require.NoError(t, err)
	require.Len(t, rankable, 1, "employee without bio must be excluded")
	assert.Equal(t, []string{"Python"}, rankable[0].SkillNames())
	require.Len(t, rankable[0].WorkExperiences, 1)
	assert.Equal(t, "2021-06", rankable[0].WorkExperiences[0].EndDate)

	both, err := repo.ByIDs(ctx, []int64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Len(t, both, 3)

	one, err := repo.ByID(ctx, 2)
	require.NoError(t, err)
	assert.False(t, one.Rankable())

	bare, err := repo.ByID(ctx, 3)
	require.NoError(t, err, "NULL middle_name, position, department and bio must read as empty")
	assert.Empty(t, bare.MiddleName)
	assert.Empty(t, bare.Department)
}
