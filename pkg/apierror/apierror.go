package apierror

import "fmt"

// Result codes carried on every response body. The numbering is part of the
// dashboard client contract: 1000 and the 1xx codes signal success, single
// digits identify the failure class.
const (
	CodeAuthSuccess   = 1000
	CodeObjectAdded   = 100
	CodeObjectDeleted = 101
	CodeObjectChanged = 102

	CodeNotFound        = 1
	CodeInvalidPassword = 2
	CodeUnauthenticated = 3
	CodeAccessDenied    = 4
	CodeInvalidRequest  = 5
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ResultCode int    `json:"resultCode"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	return fmt.Sprintf("%s: %s (resultCode=%d)", e.Code, e.Message, e.ResultCode)
}

func New(code string, message string, resultCode int, status int) *APIError {
	return &APIError{Code: code, Message: message, ResultCode: resultCode, HTTPStatus: status}
}
