package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-access-admin/internal/model"
	"go-access-admin/internal/storage"
	"go-access-admin/pkg/apierror"
)

func newPhotoStore(t *testing.T) *storage.PhotoStore {
	t.Helper()

	root := t.TempDir()
	store, err := storage.New(filepath.Join(root, "photos"), filepath.Join(root, "thumbs"))
	require.NoError(t, err)
	return store
}

func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEmployeeService_Add(t *testing.T) {
	t.Parallel()

	t.Run("without photo", func(t *testing.T) {
		t.Parallel()

		employees := newFakeEmployeeStore()
		svc := NewEmployeeService(employees, newPhotoStore(t), []string{"image/jpeg", "image/png"})

		created, err := svc.Add(context.Background(), model.AddEmployeeRequest{
			Name:     "J. Doe",
			Info:     "warehouse",
			IsAccess: true,
		}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "J. Doe", created.Name)
		assert.True(t, created.IsAccess)
		assert.Empty(t, created.PhotoURL)
	})

	t.Run("with photo stores the file and returns its URL", func(t *testing.T) {
		t.Parallel()

		employees := newFakeEmployeeStore()
		photos := newPhotoStore(t)
		svc := NewEmployeeService(employees, photos, []string{"image/jpeg", "image/png"})

		created, err := svc.Add(context.Background(), model.AddEmployeeRequest{Name: "J. Doe"}, "badge.png", bytes.NewReader(pngBytes(t)))
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(created.PhotoURL, PhotoURLPrefix), "got %q", created.PhotoURL)

		stored := strings.TrimPrefix(created.PhotoURL, PhotoURLPrefix)
		file, err := photos.Open(stored)
		require.NoError(t, err)
		file.Close()
	})

	t.Run("rejects a disallowed photo type", func(t *testing.T) {
		t.Parallel()

		svc := NewEmployeeService(newFakeEmployeeStore(), newPhotoStore(t), []string{"image/jpeg", "image/png"})

		_, err := svc.Add(context.Background(), model.AddEmployeeRequest{Name: "J. Doe"}, "notes.txt", strings.NewReader("plain text, not an image"))
		requireResultCode(t, err, apierror.CodeInvalidRequest)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		t.Parallel()

		employees := newFakeEmployeeStore(model.Employee{ID: 1, Name: "J. Doe"})
		svc := NewEmployeeService(employees, newPhotoStore(t), nil)

		_, err := svc.Add(context.Background(), model.AddEmployeeRequest{Name: "J. Doe"}, "", nil)
		requireResultCode(t, err, apierror.CodeInvalidRequest)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		t.Parallel()

		svc := NewEmployeeService(newFakeEmployeeStore(), newPhotoStore(t), nil)

		_, err := svc.Add(context.Background(), model.AddEmployeeRequest{Name: "   "}, "", nil)
		requireResultCode(t, err, apierror.CodeInvalidRequest)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	t.Parallel()

	t.Run("replaces fields and keeps the photo when none is sent", func(t *testing.T) {
		t.Parallel()

		employees := newFakeEmployeeStore(model.Employee{ID: 1, Name: "J. Doe", Info: "old", PhotoURL: PhotoURLPrefix + "keep.png"})
		svc := NewEmployeeService(employees, newPhotoStore(t), nil)

		updated, err := svc.Update(context.Background(), 1, model.AddEmployeeRequest{Name: "J. Doe", Info: "new", IsAccess: true}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Info)
		assert.True(t, updated.IsAccess)
		assert.Equal(t, PhotoURLPrefix+"keep.png", updated.PhotoURL)
	})

	t.Run("unknown employee", func(t *testing.T) {
		t.Parallel()

		svc := NewEmployeeService(newFakeEmployeeStore(), newPhotoStore(t), nil)

		_, err := svc.Update(context.Background(), 99, model.AddEmployeeRequest{Name: "x"}, "", nil)
		requireResultCode(t, err, apierror.CodeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes the record and the stored photo", func(t *testing.T) {
		t.Parallel()

		employees := newFakeEmployeeStore()
		photos := newPhotoStore(t)
		svc := NewEmployeeService(employees, photos, []string{"image/png"})

		created, err := svc.Add(context.Background(), model.AddEmployeeRequest{Name: "J. Doe"}, "badge.png", bytes.NewReader(pngBytes(t)))
		require.NoError(t, err)
		stored := strings.TrimPrefix(created.PhotoURL, PhotoURLPrefix)

		require.NoError(t, svc.Delete(context.Background(), created.ID))

		_, err = employees.FindByID(context.Background(), created.ID)
		require.ErrorIs(t, err, model.ErrEmployeeNotFound)

		_, err = photos.Open(stored)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown employee", func(t *testing.T) {
		t.Parallel()

		svc := NewEmployeeService(newFakeEmployeeStore(), newPhotoStore(t), nil)
		requireResultCode(t, svc.Delete(context.Background(), 99), apierror.CodeNotFound)
	})
}

func TestEmployeeService_Get(t *testing.T) {
	t.Parallel()

	employees := newFakeEmployeeStore(model.Employee{ID: 7, Name: "J. Doe"})
	svc := NewEmployeeService(employees, newPhotoStore(t), nil)

	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "J. Doe", got.Name)

	_, err = svc.Get(context.Background(), 8)
	requireResultCode(t, err, apierror.CodeNotFound)
}
