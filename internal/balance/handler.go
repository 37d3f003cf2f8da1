package balance

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/transport"
)

type ServiceAPI interface {
	GetSummary(employeeID int64, year int) (*SummaryResponse, error)
	SetTotals(employeeID int64, year int, dto UpdateTotalsDTO, userPermissions []string) (*SummaryResponse, error)
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

// GetMyBalance returns the caller's own ledger summary for the requested year
// (current year when omitted).
func (h *Handler) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.GetSummary(user.ID, yearFromQuery(r))
	if err != nil {
		h.Logger.Error("GetMyBalance: service error", "error", err, "employee_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

// GetEmployeeBalance returns any employee's summary. Route is guarded by the
// manage_balances permission; the service does not re-check here.
func (h *Handler) GetEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	summary, err := h.Service.GetSummary(employeeID, yearFromQuery(r))
	if err != nil {
		h.Logger.Error("GetEmployeeBalance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) UpdateEmployeeBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	var dto UpdateTotalsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := h.Service.SetTotals(employeeID, yearFromQuery(r), dto, user.Permissions)
	if err != nil {
		h.Logger.Error("UpdateEmployeeBalance: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func yearFromQuery(r *http.Request) int {
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil && year > 0 {
			return year
		}
	}
	return time.Now().Year()
}
