package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-access-admin/internal/model"
)

type EmployeeRepository struct {
	pool *pgxpool.Pool
}

func NewEmployeeRepository(pool *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (model.Employee, error) {
	var e model.Employee
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, info, COALESCE(photo_url, ''), is_access FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Info, &e.PhotoURL, &e.IsAccess)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Employee{}, model.ErrEmployeeNotFound
	}
	if err != nil {
		return model.Employee{}, fmt.Errorf("find employee by id: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE name = $1)`, strings.TrimSpace(name)).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check employee exists: %w", err)
	}
	return exists, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e model.Employee) (model.Employee, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employees (name, info, photo_url, is_access)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		strings.TrimSpace(e.Name), e.Info, e.PhotoURL, e.IsAccess).
		Scan(&e.ID)
	if err != nil {
		return model.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e model.Employee) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE employees SET name = $2, info = $3, photo_url = $4, is_access = $5 WHERE id = $1`,
		e.ID, strings.TrimSpace(e.Name), e.Info, e.PhotoURL, e.IsAccess)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) List(ctx context.Context, offset int, limit int) ([]model.Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, info, COALESCE(photo_url, ''), is_access
		 FROM employees ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]model.Employee, 0)
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Info, &e.PhotoURL, &e.IsAccess); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return count, nil
}
