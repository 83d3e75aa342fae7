package service

import (
	"context"
	"time"

	"go-access-admin/internal/model"
)

// Store interfaces are declared here, on the consumer side, so services can
// be tested against hand-written fakes. The pgx repositories satisfy them.

type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByLogin(ctx context.Context, login string) (model.User, error)
	ExistsByLogin(ctx context.Context, login string) (bool, error)
	Create(ctx context.Context, login string, passwordHash string, accessLayerID int) (model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateAccessLayer(ctx context.Context, id int64, accessLayerID int) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset int, limit int) ([]model.User, error)
	Count(ctx context.Context) (int, error)
}

type AccessLayerStore interface {
	FindByID(ctx context.Context, id int) (model.AccessLayer, error)
	List(ctx context.Context) ([]model.AccessLayer, error)
}

type EmployeeStore interface {
	FindByID(ctx context.Context, id int64) (model.Employee, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, e model.Employee) (model.Employee, error)
	Update(ctx context.Context, e model.Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, offset int, limit int) ([]model.Employee, error)
	Count(ctx context.Context) (int, error)
}

type AccessLogStore interface {
	Create(ctx context.Context, employeeID int64, timestamp time.Time, isKnown bool) (model.AccessLog, error)
	List(ctx context.Context, offset int, limit int) ([]model.AccessLog, error)
	Count(ctx context.Context) (int, error)
}

// pageOffset translates 1-based page numbers into SQL offsets, clamping
// nonsense input to the first page.
func pageOffset(page int, pageSize int) (offset int, limit int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	return (page - 1) * pageSize, pageSize
}
