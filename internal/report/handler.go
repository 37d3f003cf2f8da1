package report

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/transport"
)

type ServiceAPI interface {
	ListAllRequests(filter Filter, requester *auth.User) (*ListResponse, error)
	AggregateByType(employeeID int64, requester *auth.User) (*AggregateResponse, error)
	ExportCSV(w io.Writer, filter Filter, requester *auth.User) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) GetAllLeaveRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	listing, err := h.Service.ListAllRequests(filterFromQuery(r), user)
	if err != nil {
		h.Logger.Error("GetAllLeaveRequests: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, listing)
}

func (h *Handler) GetLeaveStatistics(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var employeeID int64
	if raw := r.URL.Query().Get("employee_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
			return
		}
		employeeID = parsed
	}

	aggregates, err := h.Service.AggregateByType(employeeID, user)
	if err != nil {
		h.Logger.Error("GetLeaveStatistics: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, aggregates)
}

func (h *Handler) ExportLeaveRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=leave-requests-%s.csv", time.Now().Format("2006-01-02")))

	if err := h.Service.ExportCSV(w, filterFromQuery(r), user); err != nil {
		h.Logger.Error("ExportLeaveRequests: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
}

func filterFromQuery(r *http.Request) Filter {
	filter := Filter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("leave_type_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.LeaveTypeID = id
		}
	}
	return filter
}
