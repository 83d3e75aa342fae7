package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-access-admin/internal/event"
	"go-access-admin/internal/model"
	"go-access-admin/pkg/apierror"
)

// AccessLogService records access events and publishes each one on the event
// bus, where the websocket hub picks it up for live dashboards.
type AccessLogService struct {
	logs      AccessLogStore
	employees EmployeeStore
	bus       event.Bus
	now       func() time.Time
}

func NewAccessLogService(logs AccessLogStore, employees EmployeeStore, bus event.Bus) *AccessLogService {
	return &AccessLogService{logs: logs, employees: employees, bus: bus, now: time.Now}
}

func (s *AccessLogService) List(ctx context.Context, page int, pageSize int) ([]model.AccessLog, int, error) {
	offset, limit := pageOffset(page, pageSize)

	logs, err := s.logs.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.logs.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return logs, count, nil
}

// Record stores one access event and publishes exactly one bus event for it.
func (s *AccessLogService) Record(ctx context.Context, employeeID int64, isKnown bool) (model.AccessLog, error) {
	if _, err := s.employees.FindByID(ctx, employeeID); err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return model.AccessLog{}, apierror.New("NOT_FOUND", "employee not found", apierror.CodeNotFound, http.StatusNotFound)
		}
		return model.AccessLog{}, err
	}

	recorded := s.now().UTC()
	log, err := s.logs.Create(ctx, employeeID, recorded, isKnown)
	if err != nil {
		return model.AccessLog{}, err
	}

	eventType := event.TypeAccessDenied
	if isKnown {
		eventType = event.TypeAccessGranted
	}

	s.bus.Publish(event.New(eventType))

	return log, nil
}
