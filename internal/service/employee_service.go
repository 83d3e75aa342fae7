package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"go-access-admin/internal/model"
	"go-access-admin/internal/storage"
	"go-access-admin/internal/util"
	"go-access-admin/pkg/apierror"
)

// PhotoURLPrefix is where the router mounts the photo file server.
const PhotoURLPrefix = "/static/employees/"

type EmployeeService struct {
	employees        EmployeeStore
	photos           *storage.PhotoStore
	allowedMIMETypes map[string]struct{}
}

func NewEmployeeService(employees EmployeeStore, photos *storage.PhotoStore, allowedMIMETypes []string) *EmployeeService {
	allowed := make(map[string]struct{}, len(allowedMIMETypes))
	for _, mime := range allowedMIMETypes {
		trimmed := strings.ToLower(strings.TrimSpace(mime))
		if trimmed != "" {
			allowed[trimmed] = struct{}{}
		}
	}

	return &EmployeeService{employees: employees, photos: photos, allowedMIMETypes: allowed}
}

func (s *EmployeeService) List(ctx context.Context, page int, pageSize int) ([]model.Employee, int, error) {
	offset, limit := pageOffset(page, pageSize)

	employees, err := s.employees.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	count, err := s.employees.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return employees, count, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (model.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if errors.Is(err, model.ErrEmployeeNotFound) {
		return model.Employee{}, apierror.New("NOT_FOUND", "employee not found", apierror.CodeNotFound, http.StatusNotFound)
	}
	return employee, err
}

func (s *EmployeeService) Add(ctx context.Context, req model.AddEmployeeRequest, photoName string, photo io.Reader) (model.Employee, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return model.Employee{}, apierror.New("BAD_REQUEST", "name is required", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	exists, err := s.employees.ExistsByName(ctx, name)
	if err != nil {
		return model.Employee{}, err
	}
	if exists {
		return model.Employee{}, apierror.New("ALREADY_EXISTS", "employee already exists", apierror.CodeInvalidRequest, http.StatusConflict)
	}

	employee := model.Employee{Name: name, Info: req.Info, IsAccess: req.IsAccess}

	if photo != nil {
		url, err := s.storePhoto(photoName, photo)
		if err != nil {
			return model.Employee{}, err
		}
		employee.PhotoURL = url
	}

	return s.employees.Create(ctx, employee)
}

func (s *EmployeeService) Update(ctx context.Context, id int64, req model.AddEmployeeRequest, photoName string, photo io.Reader) (model.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return model.Employee{}, apierror.New("NOT_FOUND", "employee not found", apierror.CodeNotFound, http.StatusNotFound)
		}
		return model.Employee{}, err
	}

	if strings.TrimSpace(req.Name) != "" {
		employee.Name = strings.TrimSpace(req.Name)
	}
	employee.Info = req.Info
	employee.IsAccess = req.IsAccess

	if photo != nil {
		s.removePhoto(employee.PhotoURL)

		url, err := s.storePhoto(photoName, photo)
		if err != nil {
			return model.Employee{}, err
		}
		employee.PhotoURL = url
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return model.Employee{}, err
	}

	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return apierror.New("NOT_FOUND", "employee not found", apierror.CodeNotFound, http.StatusNotFound)
		}
		return err
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}

	s.removePhoto(employee.PhotoURL)
	return nil
}

// storePhoto sniffs the content type, saves the file under a unique name and
// generates a thumbnail. Returns the public URL of the stored photo.
func (s *EmployeeService) storePhoto(photoName string, photo io.Reader) (string, error) {
	sanitized, err := util.SanitizeFilename(photoName)
	if err != nil {
		return "", err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(photo, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read photo: %w", err)
	}
	head = head[:n]

	mime := strings.ToLower(http.DetectContentType(head))
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}
	if _, ok := s.allowedMIMETypes[mime]; len(s.allowedMIMETypes) > 0 && !ok {
		return "", apierror.New("UNSUPPORTED_TYPE", "photo type is not allowed", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	stored := uuid.NewString() + "_" + sanitized
	if _, err := s.photos.Save(stored, io.MultiReader(strings.NewReader(string(head)), photo)); err != nil {
		return "", err
	}

	if _, err := s.photos.GenerateThumbnail(stored); err != nil {
		// The full-size photo is still usable without a thumbnail.
		slog.Warn("thumbnail generation failed", "photo", stored, "error", err)
	}

	return PhotoURLPrefix + stored, nil
}

func (s *EmployeeService) removePhoto(photoURL string) {
	if !strings.HasPrefix(photoURL, PhotoURLPrefix) {
		return
	}

	name := path.Base(strings.TrimPrefix(photoURL, PhotoURLPrefix))
	if err := s.photos.Remove(name); err != nil {
		slog.Warn("photo removal failed", "photo", name, "error", err)
	}
}
