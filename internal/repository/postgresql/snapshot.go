package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-analytics-go/internal/domain/snapshot"
	"github.com/cmlabs-hris/hris-analytics-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type snapshotRepositoryImpl struct {
	db *database.DB
}

func NewSnapshotRepository(db *database.DB) snapshot.SnapshotRepository {
	return &snapshotRepositoryImpl{db: db}
}

const snapshotColumns = `
	s.id, s.name, s.department_id, s.date_from, s.date_to,
	s.total_employees, s.total_inactive_employees, s.turnover_rate,
	s.avg_salary, s.total_salary_cost,
	s.total_leaves, s.avg_leaves_per_employee,
	s.avg_daily_hours, s.total_worked_hours,
	s.avg_kpi_score, s.created_at, s.updated_at,
	d.name`

func scanSnapshot(row pgx.Row) (snapshot.StatsSnapshot, error) {
	var s snapshot.StatsSnapshot
	err := row.Scan(
		&s.ID, &s.Name, &s.DepartmentID, &s.DateFrom, &s.DateTo,
		&s.TotalEmployees, &s.TotalInactiveEmployees, &s.TurnoverRate,
		&s.AvgSalary, &s.TotalSalaryCost,
		&s.TotalLeaves, &s.AvgLeavesPerEmployee,
		&s.AvgDailyHours, &s.TotalWorkedHours,
		&s.AvgKPIScore, &s.CreatedAt, &s.UpdatedAt,
		&s.DepartmentName,
	)
	return s, err
}

// Create implements snapshot.SnapshotRepository.
func (r *snapshotRepositoryImpl) Create(ctx context.Context, s snapshot.StatsSnapshot) (snapshot.StatsSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO hr_analytics_stats (
			id, name, department_id, date_from, date_to,
			total_employees, total_inactive_employees, turnover_rate,
			avg_salary, total_salary_cost,
			total_leaves, avg_leaves_per_employee,
			avg_daily_hours, total_worked_hours, avg_kpi_score
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID, s.Name, s.DepartmentID, s.DateFrom, s.DateTo,
		s.TotalEmployees, s.TotalInactiveEmployees, s.TurnoverRate,
		s.AvgSalary, s.TotalSalaryCost,
		s.TotalLeaves, s.AvgLeavesPerEmployee,
		s.AvgDailyHours, s.TotalWorkedHours, s.AvgKPIScore,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return snapshot.StatsSnapshot{}, fmt.Errorf("failed to create stats snapshot: %w", err)
	}
	return s, nil
}

// GetByID implements snapshot.SnapshotRepository.
func (r *snapshotRepositoryImpl) GetByID(ctx context.Context, id string) (snapshot.StatsSnapshot, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM hr_analytics_stats s
		LEFT JOIN departments d ON d.id = s.department_id
		WHERE s.id = $1
	`, snapshotColumns)

	s, err := scanSnapshot(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snapshot.StatsSnapshot{}, snapshot.ErrSnapshotNotFound
		}
		return snapshot.StatsSnapshot{}, fmt.Errorf("failed to get stats snapshot %s: %w", id, err)
	}
	return s, nil
}

// List implements snapshot.SnapshotRepository.
func (r *snapshotRepositoryImpl) List(ctx context.Context, limit, offset int) ([]snapshot.StatsSnapshot, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM hr_analytics_stats`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stats snapshots: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM hr_analytics_stats s
		LEFT JOIN departments d ON d.id = s.department_id
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT $1 OFFSET $2
	`, snapshotColumns)

	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list stats snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []snapshot.StatsSnapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan stats snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return snapshots, total, nil
}

// UpdateMetrics implements snapshot.SnapshotRepository.
func (r *snapshotRepositoryImpl) UpdateMetrics(ctx context.Context, s snapshot.StatsSnapshot) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE hr_analytics_stats SET
			total_employees = $2,
			total_inactive_employees = $3,
			turnover_rate = $4,
			avg_salary = $5,
			total_salary_cost = $6,
			total_leaves = $7,
			avg_leaves_per_employee = $8,
			avg_daily_hours = $9,
			total_worked_hours = $10,
			avg_kpi_score = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		s.ID,
		s.TotalEmployees, s.TotalInactiveEmployees, s.TurnoverRate,
		s.AvgSalary, s.TotalSalaryCost,
		s.TotalLeaves, s.AvgLeavesPerEmployee,
		s.AvgDailyHours, s.TotalWorkedHours, s.AvgKPIScore,
	)
	if err != nil {
		return fmt.Errorf("failed to update stats snapshot %s: %w", s.ID, err)
	}
	if result.RowsAffected() == 0 {
		return snapshot.ErrSnapshotNotFound
	}
	return nil
}

// ListIDs implements snapshot.SnapshotRepository.
func (r *snapshotRepositoryImpl) ListIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id FROM hr_analytics_stats ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats snapshot ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan stats snapshot id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
