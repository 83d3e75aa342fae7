package util

import (
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"go-access-admin/pkg/apierror"
)

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeFilename normalizes a client-supplied photo filename into
// something safe to store on disk: control and path characters are stripped
// or replaced, hidden names and directory references are rejected.
func SanitizeFilename(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apierror.New("INVALID_FILENAME", "filename cannot be empty", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	if strings.Contains(trimmed, "\x00") {
		return "", apierror.New("INVALID_FILENAME", "filename contains null bytes", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	builder := strings.Builder{}
	builder.Grow(len(trimmed))

	for _, char := range trimmed {
		if unicode.IsControl(char) {
			continue
		}
		builder.WriteRune(char)
	}

	replaced := invalidFilenameChars.ReplaceAllString(builder.String(), "_")
	cleaned := strings.TrimSpace(replaced)

	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return "", apierror.New("INVALID_FILENAME", "filename is invalid after sanitization", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	if strings.HasPrefix(cleaned, ".") {
		return "", apierror.New("INVALID_FILENAME", "hidden filenames are not allowed", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	// Truncate by runes (not bytes) to avoid splitting multi-byte characters.
	runes := []rune(cleaned)
	if len(runes) > 128 {
		runes = runes[:128]
	}

	return string(runes), nil
}
