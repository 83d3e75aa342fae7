package handler

import (
	"encoding/json"
	"net/http"

	"go-access-admin/internal/model"
	"go-access-admin/internal/service"
	"go-access-admin/pkg/apierror"
)

const logTimeLayout = "2006-01-02 15:04:05"

type AccessLogHandler struct {
	service *service.AccessLogService
}

func NewAccessLogHandler(service *service.AccessLogService) *AccessLogHandler {
	return &AccessLogHandler{service: service}
}

func (h *AccessLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	logs, count, err := h.service.List(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]model.LogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, model.LogResponse{
			ID:     l.ID,
			Name:   l.EmployeeName,
			Access: l.IsKnown,
			Time:   l.Timestamp.Format(logTimeLayout),
		})
	}

	writeJSON(w, http.StatusOK, model.AccessLogsResponse{Logs: out, Count: count, ResultCode: 0})
}

// Record stores an access event and causes exactly one broadcast to the live
// subscribers, carrying "1" for granted and "0" for denied.
func (h *AccessLogHandler) Record(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload model.RecordAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", apierror.CodeInvalidRequest, http.StatusBadRequest))
		return
	}

	if _, err := h.service.Record(r.Context(), payload.EmployeeID, payload.IsKnown); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.ResultResponse{ResultCode: apierror.CodeObjectAdded})
}
