package leave

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/transport"
)

type ServiceAPI interface {
	Submit(employeeID int64, dto SubmitLeaveDTO) (*LeaveRequest, error)
	Approve(requestID string, reviewer *auth.User) (*LeaveRequest, error)
	Reject(requestID string, dto RejectLeaveDTO, reviewer *auth.User) (*LeaveRequest, error)
	Cancel(requestID string, employeeID int64) (*LeaveRequest, error)
	GetLeaveRequest(requestID string, requester *auth.User) (*LeaveRequest, error)
	ListMyRequests(employeeID int64) ([]*LeaveRequest, error)
	ListPending(reviewer *auth.User) ([]*LeaveRequest, error)
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

func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.Submit(user.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitLeave: service error", "error", err, "employee_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToResponse(request))
}

func (h *Handler) GetMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListMyRequests(user.ID)
	if err != nil {
		h.Logger.Error("GetMyLeaveRequests: service error", "error", err, "employee_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toListResponse(requests))
}

func (h *Handler) GetLeaveRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	request, err := h.Service.GetLeaveRequest(chi.URLParam(r, "id"), user)
	if err != nil {
		h.Logger.Error("GetLeaveRequest: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(request))
}

func (h *Handler) GetPendingLeaveRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requests, err := h.Service.ListPending(user)
	if err != nil {
		h.Logger.Error("GetPendingLeaveRequests: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, toListResponse(requests))
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	request, err := h.Service.Approve(chi.URLParam(r, "id"), user)
	if err != nil {
		h.Logger.Error("ApproveLeave: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(request))
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto RejectLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.Reject(chi.URLParam(r, "id"), dto, user)
	if err != nil {
		h.Logger.Error("RejectLeave: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(request))
}

func (h *Handler) CancelLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	request, err := h.Service.Cancel(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		h.Logger.Error("CancelLeave: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(request))
}

func toListResponse(requests []*LeaveRequest) LeaveRequestsResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, ToResponse(request))
	}
	return LeaveRequestsResponse{LeaveRequests: out}
}
