package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-access-admin/internal/auth"
	"go-access-admin/internal/event"
	"go-access-admin/internal/model"
)

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})

	svc, err := auth.NewTokenService(privatePEM, publicPEM, 15*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	return svc
}

// fakeUserStore keeps accounts in a map keyed by login. IDs are assigned
// sequentially on Create.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]model.User
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]model.User), nextID: 1}
	for _, u := range users {
		s.users[u.Login] = u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id int64) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) FindByLogin(_ context.Context, login string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[login]; ok {
		return u, nil
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByLogin(_ context.Context, login string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[login]
	return ok, nil
}

func (s *fakeUserStore) Create(_ context.Context, login string, passwordHash string, accessLayerID int) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.User{ID: s.nextID, Login: login, PasswordHash: passwordHash, AccessLayerID: accessLayerID}
	s.nextID++
	s.users[login] = u
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u.PasswordHash = passwordHash
	s.users[u.Login] = u
	return nil
}

func (s *fakeUserStore) UpdateAccessLayer(ctx context.Context, id int64, accessLayerID int) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u.AccessLayerID = accessLayerID
	s.users[u.Login] = u
	return nil
}

func (s *fakeUserStore) Delete(ctx context.Context, id int64) error {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, u.Login)
	return nil
}

func (s *fakeUserStore) List(_ context.Context, offset int, limit int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeUserStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

type fakeLayerStore struct {
	layers map[int]model.AccessLayer
}

func newFakeLayerStore() *fakeLayerStore {
	return &fakeLayerStore{layers: map[int]model.AccessLayer{
		model.AccessLayerAdmin: {ID: model.AccessLayerAdmin, Name: "admin"},
		model.AccessLayerUser:  {ID: model.AccessLayerUser, Name: "user"},
	}}
}

func (s *fakeLayerStore) FindByID(_ context.Context, id int) (model.AccessLayer, error) {
	if l, ok := s.layers[id]; ok {
		return l, nil
	}
	return model.AccessLayer{}, model.ErrAccessLayerNotFound
}

func (s *fakeLayerStore) List(_ context.Context) ([]model.AccessLayer, error) {
	out := make([]model.AccessLayer, 0, len(s.layers))
	for _, l := range s.layers {
		out = append(out, l)
	}
	return out, nil
}

type fakeEmployeeStore struct {
	mu        sync.Mutex
	nextID    int64
	employees map[int64]model.Employee
}

func newFakeEmployeeStore(employees ...model.Employee) *fakeEmployeeStore {
	s := &fakeEmployeeStore{employees: make(map[int64]model.Employee), nextID: 1}
	for _, e := range employees {
		s.employees[e.ID] = e
		if e.ID >= s.nextID {
			s.nextID = e.ID + 1
		}
	}
	return s
}

func (s *fakeEmployeeStore) FindByID(_ context.Context, id int64) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.employees[id]; ok {
		return e, nil
	}
	return model.Employee{}, model.ErrEmployeeNotFound
}

func (s *fakeEmployeeStore) ExistsByName(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeEmployeeStore) Create(_ context.Context, e model.Employee) (model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.employees[e.ID] = e
	return e, nil
}

func (s *fakeEmployeeStore) Update(_ context.Context, e model.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[e.ID]; !ok {
		return model.ErrEmployeeNotFound
	}
	s.employees[e.ID] = e
	return nil
}

func (s *fakeEmployeeStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[id]; !ok {
		return model.ErrEmployeeNotFound
	}
	delete(s.employees, id)
	return nil
}

func (s *fakeEmployeeStore) List(_ context.Context, offset int, limit int) ([]model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]model.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		all = append(all, e)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *fakeEmployeeStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.employees), nil
}

type fakeLogStore struct {
	mu     sync.Mutex
	nextID int64
	logs   []model.AccessLog
}

func (s *fakeLogStore) Create(_ context.Context, employeeID int64, timestamp time.Time, isKnown bool) (model.AccessLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	log := model.AccessLog{ID: s.nextID, EmployeeID: employeeID, Timestamp: timestamp, IsKnown: isKnown}
	s.logs = append(s.logs, log)
	return log, nil
}

func (s *fakeLogStore) List(_ context.Context, offset int, limit int) ([]model.AccessLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offset >= len(s.logs) {
		return nil, nil
	}
	end := offset + limit
	if end > len(s.logs) {
		end = len(s.logs)
	}
	return s.logs[offset:end], nil
}

func (s *fakeLogStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs), nil
}

// recordingBus captures published events instead of fanning them out.
type recordingBus struct {
	mu        sync.Mutex
	published []event.Event
}

func (b *recordingBus) Publish(e event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
}

func (b *recordingBus) Subscribe() (<-chan event.Event, func()) {
	ch := make(chan event.Event)
	return ch, func() {}
}

func (b *recordingBus) events() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]event.Event(nil), b.published...)
}
