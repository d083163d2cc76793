package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/usecase"
	"clinic-scheduler/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	auditLogID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid audit log ID")
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		if err == usecase.ErrAuditLogNotFound {
			response.NotFound(w, "Audit log not found")
			return
		}
		response.InternalServerError(w, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// SearchAuditLogs lists audit entries newest first.
// Query: actor_id, action, since (RFC 3339), page, limit.
func (h *AuditLogHandler) SearchAuditLogs(w http.ResponseWriter, r *http.Request) {
	query, msg := parseAuditLogQuery(r)
	if msg != "" {
		response.BadRequest(w, msg)
		return
	}

	result, err := h.auditLogUsecase.SearchAuditLogs(r.Context(), query)
	if err != nil {
		if err == usecase.ErrUnknownAction {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", result.Logs,
		response.NewMeta(result.Page, result.Limit, result.Total))
}

func parseAuditLogQuery(r *http.Request) (*dto.AuditLogQuery, string) {
	values := r.URL.Query()
	query := &dto.AuditLogQuery{Action: values.Get("action")}

	if raw := values.Get("actor_id"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			return nil, "Invalid actor ID"
		}
		query.ActorID = &actorID
	}

	if raw := values.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, "Invalid since timestamp, expected RFC 3339"
		}
		query.Since = &since
	}

	for key, dst := range map[string]*int{"page": &query.Page, "limit": &query.Limit} {
		raw := values.Get(key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, "Invalid " + key
		}
		*dst = n
	}

	return query, ""
}
