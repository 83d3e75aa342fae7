package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *PhotoStore {
	t.Helper()

	root := t.TempDir()
	store, err := New(filepath.Join(root, "photos"), filepath.Join(root, "thumbs"))
	require.NoError(t, err)
	return store
}

func encodePNG(t *testing.T, width int, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 0x40, A: 0xff})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPhotoStore_SaveOpenRemove(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	content := []byte("photo bytes")

	path, err := store.Save("badge.jpg", bytes.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, store.RootAbs()))

	f, err := store.Open("badge.jpg")
	require.NoError(t, err)
	read, err := io.ReadAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, content, read)

	require.NoError(t, store.Remove("badge.jpg"))
	_, err = store.Open("badge.jpg")
	require.ErrorIs(t, err, os.ErrNotExist)

	// Removing a missing photo is not an error.
	require.NoError(t, store.Remove("badge.jpg"))
}

func TestPhotoStore_RejectsPathEscapes(t *testing.T) {
	t.Parallel()

	store := newStore(t)

	for _, name := range []string{
		"",
		"   ",
		"../escape.jpg",
		"..\\escape.jpg",
		"nested/escape.jpg",
		"..",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Save(name, strings.NewReader("x"))
			require.Error(t, err, "name %q must be rejected", name)
		})
	}
}

func TestPhotoStore_GenerateThumbnail(t *testing.T) {
	t.Parallel()

	t.Run("scales down to the bounding box", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.Save("badge.png", bytes.NewReader(encodePNG(t, 640, 480)))
		require.NoError(t, err)

		thumbName, err := store.GenerateThumbnail("badge.png")
		require.NoError(t, err)
		assert.Equal(t, "badge.jpg", thumbName)

		f, err := os.Open(filepath.Join(store.thumbRoot, thumbName))
		require.NoError(t, err)
		defer f.Close()

		thumb, err := jpeg.Decode(f)
		require.NoError(t, err)
		bounds := thumb.Bounds()
		assert.Equal(t, 128, bounds.Dx())
		assert.Equal(t, 96, bounds.Dy())
	})

	t.Run("small images are not upscaled", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.Save("small.png", bytes.NewReader(encodePNG(t, 40, 30)))
		require.NoError(t, err)

		thumbName, err := store.GenerateThumbnail("small.png")
		require.NoError(t, err)

		f, err := os.Open(filepath.Join(store.thumbRoot, thumbName))
		require.NoError(t, err)
		defer f.Close()

		thumb, err := jpeg.Decode(f)
		require.NoError(t, err)
		assert.Equal(t, 40, thumb.Bounds().Dx())
		assert.Equal(t, 30, thumb.Bounds().Dy())
	})

	t.Run("non-image input fails", func(t *testing.T) {
		t.Parallel()

		store := newStore(t)
		_, err := store.Save("notes.txt", strings.NewReader("not an image"))
		require.NoError(t, err)

		_, err = store.GenerateThumbnail("notes.txt")
		require.Error(t, err)
	})
}

func TestPhotoStore_RemoveDeletesThumbnail(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	_, err := store.Save("badge.png", bytes.NewReader(encodePNG(t, 200, 200)))
	require.NoError(t, err)

	thumbName, err := store.GenerateThumbnail("badge.png")
	require.NoError(t, err)

	require.NoError(t, store.Remove("badge.png"))

	_, err = os.Stat(filepath.Join(store.thumbRoot, thumbName))
	require.ErrorIs(t, err, os.ErrNotExist)
}
