// Package employee reads employee records, with skills and work history, from PostgreSQL.
package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kailas-cloud/hrsearch/internal/domain"
	"github.com/kailas-cloud/hrsearch/internal/domain/employee"
)

// PgxPool is the subset of *pgxpool.Pool the repository uses.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const employeeColumns = `id, first_name, last_name, middle_name, email, position, department,
	experience_years, bio, xp_points, level`

const (
	qListRankable = `SELECT ` + employeeColumns + ` FROM employees e
	WHERE btrim(first_name) <> '' AND btrim(last_name) <> ''
	  AND btrim(position) <> '' AND btrim(bio) <> ''
	  AND EXISTS (SELECT 1 FROM employee_skills es WHERE es.employee_id = e.id)
	ORDER BY id`

	qByIDs = `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1) ORDER BY id`

	qByID = `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	qSkills = `SELECT es.employee_id, s.name, s.category
	FROM employee_skills es JOIN skills s ON s.id = es.skill_id
	WHERE es.employee_id = ANY($1)
	ORDER BY es.employee_id, s.name`

	qWork = `SELECT employee_id, company_name, position, description,
	       COALESCE(to_char(start_date, 'YYYY-MM'), ''), COALESCE(to_char(end_date, 'YYYY-MM'), ''), is_current
	FROM work_experiences
	WHERE employee_id = ANY($1)
	ORDER BY employee_id, start_date NULLS LAST, id`
)

// Repo loads employees. Skills and work experiences are always attached.
type Repo struct{ Pool PgxPool }

// New creates an employee repository.
func New(p PgxPool) *Repo { return &Repo{Pool: p} }

// ListRankable returns every employee satisfying the ranking invariant, ordered by id.
func (r *Repo) ListRankable(ctx context.Context) ([]employee.Employee, error) {
	ctx, span := otel.Tracer("repo.employees").Start(ctx, "employees.ListRankable")
	defer span.End()

	emps, err := r.queryEmployees(ctx, "employee.list_rankable", qListRankable)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := r.attach(ctx, emps); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("employees", len(emps)))
	return employee.FilterRankable(emps), nil
}

// ByIDs returns the employees with the given ids. Unknown ids are skipped.
func (r *Repo) ByIDs(ctx context.Context, ids []int64) ([]employee.Employee, error) {
	ctx, span := otel.Tracer("repo.employees").Start(ctx, "employees.ByIDs")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}
	emps, err := r.queryEmployees(ctx, "employee.by_ids", qByIDs, ids)
	if err != nil {
		return nil, err
	}
	if err := r.attach(ctx, emps); err != nil {
		return nil, err
	}
	return emps, nil
}

// ByID returns one employee or domain.ErrEmployeeNotFound.
func (r *Repo) ByID(ctx context.Context, id int64) (employee.Employee, error) {
	ctx, span := otel.Tracer("repo.employees").Start(ctx, "employees.ByID")
	defer span.End()

	var e employee.Employee
	if err := scanEmployee(r.Pool.QueryRow(ctx, qByID, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, domain.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("op=employee.by_id: %w", err)
	}

	emps := []employee.Employee{e}
	if err := r.attach(ctx, emps); err != nil {
		return employee.Employee{}, err
	}
	return emps[0], nil
}

func (r *Repo) queryEmployees(ctx context.Context, op, sql string, args ...any) ([]employee.Employee, error) {
	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("op=%s: %w", op, err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, fmt.Errorf("op=%s scan: %w", op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("op=%s: %w", op, err)
	}
	return out, nil
}

// scanEmployee reads one employees row. The HR app owns the table and leaves
// middle_name, position, department, bio and the counters nullable; NULL reads
// as the zero value.
func scanEmployee(row pgx.Row, e *employee.Employee) error {
	var (
		middle, email, position, department, bio pgtype.Text
		years, xp, level                         pgtype.Int4
	)
	if err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &middle, &email, &position,
		&department, &years, &bio, &xp, &level); err != nil {
		return err //nolint:wrapcheck // callers add the op
	}
	e.MiddleName = middle.String
	e.Email = email.String
	e.Position = position.String
	e.Department = department.String
	e.ExperienceYears = int(years.Int32)
	e.Bio = bio.String
	e.XPPoints = int(xp.Int32)
	e.Level = int(level.Int32)
	return nil
}

// attach loads skills and work history for emps in two set queries.
func (r *Repo) attach(ctx context.Context, emps []employee.Employee) error {
	if len(emps) == 0 {
		return nil
	}
	ids := make([]int64, len(emps))
	byID := make(map[int64]*employee.Employee, len(emps))
	for i := range emps {
		ids[i] = emps[i].ID
		byID[emps[i].ID] = &emps[i]
	}

	rows, err := r.Pool.Query(ctx, qSkills, ids)
	if err != nil {
		return fmt.Errorf("op=employee.skills: %w", err)
	}
	for rows.Next() {
		var id int64
		var s employee.Skill
		var category pgtype.Text
		if err := rows.Scan(&id, &s.Name, &category); err != nil {
			rows.Close()
			return fmt.Errorf("op=employee.skills scan: %w", err)
		}
		s.Category = category.String
		if e, ok := byID[id]; ok {
			e.Skills = append(e.Skills, s)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("op=employee.skills: %w", err)
	}

	rows, err = r.Pool.Query(ctx, qWork, ids)
	if err != nil {
		return fmt.Errorf("op=employee.work: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var w employee.WorkExperience
		var description pgtype.Text
		var current pgtype.Bool
		if err := rows.Scan(&id, &w.CompanyName, &w.Position, &description, &w.StartDate, &w.EndDate, &current); err != nil {
			return fmt.Errorf("op=employee.work scan: %w", err)
		}
		w.Description = description.String
		w.IsCurrent = current.Bool
		if e, ok := byID[id]; ok {
			e.WorkExperiences = append(e.WorkExperiences, w)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("op=employee.work: %w", err)
	}
	return nil
}
