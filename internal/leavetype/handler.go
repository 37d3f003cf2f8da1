package leavetype

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ruangkerja/leave-management/internal/auth"
	"github.com/ruangkerja/leave-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAllLeaveTypes() ([]LeaveTypeResponse, error)
	GetLeaveTypeByID(id int64) (*LeaveType, error)
	CreateLeaveType(dto CreateLeaveTypeDTO, userPermissions []string) (*LeaveType, error)
	UpdateLeaveType(id int64, dto UpdateLeaveTypeDTO, userPermissions []string) (*LeaveType, error)
	DeleteLeaveType(id int64, userPermissions []string) error
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

func (h *Handler) GetLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.GetAllLeaveTypes()
	if err != nil {
		h.Logger.Error("GetLeaveTypes: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, LeaveTypesResponse{LeaveTypes: types})
}

func (h *Handler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateLeaveTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateLeaveType(dto, user.Permissions)
	if err != nil {
		h.Logger.Error("CreateLeaveType: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave type ID")
		return
	}

	var dto UpdateLeaveTypeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateLeaveType(id, dto, user.Permissions)
	if err != nil {
		h.Logger.Error("UpdateLeaveType: service error", "error", err, "leave_type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid leave type ID")
		return
	}

	if err := h.Service.DeleteLeaveType(id, user.Permissions); err != nil {
		h.Logger.Error("DeleteLeaveType: service error", "error", err, "leave_type_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
