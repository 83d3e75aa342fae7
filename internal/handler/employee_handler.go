package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-access-admin/internal/model"
	"go-access-admin/internal/service"
	"go-access-admin/pkg/apierror"
)

type EmployeeHandler struct {
	service      *service.EmployeeService
	maxPhotoSize int64
}

func NewEmployeeHandler(service *service.EmployeeService, maxPhotoSize int64) *EmployeeHandler {
	return &EmployeeHandler{service: service, maxPhotoSize: maxPhotoSize}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	employees, count, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.EmployeesResponse{Employees: employees, Count: count, ResultCode: 0})
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.EmployeeResponse{Employee: employee, ResultCode: 0})
}

// Add accepts either a JSON body or a multipart form with an optional photo
// part; the kiosk enrollment UI uploads both the record and the photo in one
// request.
func (h *EmployeeHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req, photoName, photo, err := h.decodeEmployeeRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.service.Add(r.Context(), req, photoName, photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.EmployeeResponse{Employee: employee, ResultCode: apierror.CodeObjectAdded})
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	req, photoName, photo, err := h.decodeEmployeeRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	employee, err := h.service.Update(r.Context(), id, req, photoName, photo)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.EmployeeResponse{Employee: employee, ResultCode: apierror.CodeObjectChanged})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ResultResponse{ResultCode: apierror.CodeObjectDeleted})
}

func (h *EmployeeHandler) decodeEmployeeRequest(r *http.Request) (model.AddEmployeeRequest, string, io.Reader, error) {
	contentType := r.Header.Get("Content-Type")

	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req model.AddEmployeeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return model.AddEmployeeRequest{}, "", nil, apierror.New("BAD_REQUEST", "invalid JSON body", apierror.CodeInvalidRequest, http.StatusBadRequest)
		}
		return req, "", nil, nil
	}

	if err := r.ParseMultipartForm(h.maxPhotoSize); err != nil {
		return model.AddEmployeeRequest{}, "", nil, apierror.New("BAD_REQUEST", "invalid multipart form", apierror.CodeInvalidRequest, http.StatusBadRequest)
	}

	isAccess, _ := strconv.ParseBool(r.FormValue("isAccess"))
	req := model.AddEmployeeRequest{
		Name:     r.FormValue("name"),
		Info:     r.FormValue("info"),
		IsAccess: isAccess,
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		// Photo part is optional.
		return req, "", nil, nil
	}

	return req, header.Filename, http.MaxBytesReader(nil, file, h.maxPhotoSize), nil
}
