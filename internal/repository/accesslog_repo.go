package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"go-access-admin/internal/model"
)

type AccessLogRepository struct {
	pool *pgxpool.Pool
}

func NewAccessLogRepository(pool *pgxpool.Pool) *AccessLogRepository {
	return &AccessLogRepository{pool: pool}
}

func (r *AccessLogRepository) Create(ctx context.Context, employeeID int64, timestamp time.Time, isKnown bool) (model.AccessLog, error) {
	log := model.AccessLog{EmployeeID: employeeID, Timestamp: timestamp, IsKnown: isKnown}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO access_logs (employee_id, timestamp, is_known)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		employeeID, timestamp, isKnown).
		Scan(&log.ID)
	if err != nil {
		return model.AccessLog{}, fmt.Errorf("create access log: %w", err)
	}
	return log, nil
}

// List returns logs newest first, joined with the employee name the
// dashboard shows next to each event.
func (r *AccessLogRepository) List(ctx context.Context, offset int, limit int) ([]model.AccessLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT l.id, l.employee_id, l.timestamp, l.is_known, e.name
		 FROM access_logs l
		 JOIN employees e ON e.id = l.employee_id
		 ORDER BY l.timestamp DESC
		 OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list access logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.AccessLog, 0)
	for rows.Next() {
		var l model.AccessLog
		if err := rows.Scan(&l.ID, &l.EmployeeID, &l.Timestamp, &l.IsKnown, &l.EmployeeName); err != nil {
			return nil, fmt.Errorf("scan access log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *AccessLogRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM access_logs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count access logs: %w", err)
	}
	return count, nil
}
