package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hotel-performance-backend/internal/domain/department"
	"github.com/cmlabs-hris/hotel-performance-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DepartmentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddPosition(w http.ResponseWriter, r *http.Request)
	RenamePosition(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)
}

type departmentHandlerImpl struct {
	departmentService department.DepartmentService
}

func NewDepartmentHandler(departmentService department.DepartmentService) DepartmentHandler {
	return &departmentHandlerImpl{
		departmentService: departmentService,
	}
}

// List implements DepartmentHandler.
func (h *departmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.departmentService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements DepartmentHandler.
func (h *departmentHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.departmentService.GetDepartment(r.Context(), chi.URLParam(r, "departmentID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements DepartmentHandler.
func (h *departmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode create department request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.departmentService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created", result)
}

// Update implements DepartmentHandler.
func (h *departmentHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode update department request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "departmentID")

	result, err := h.departmentService.UpdateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated", result)
}

// Delete implements DepartmentHandler.
func (h *departmentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.departmentService.DeleteDepartment(r.Context(), chi.URLParam(r, "departmentID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted", nil)
}

// AddPosition implements DepartmentHandler.
func (h *departmentHandlerImpl) AddPosition(w http.ResponseWriter, r *http.Request) {
	var req department.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode add position request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DepartmentID = chi.URLParam(r, "departmentID")

	result, err := h.departmentService.AddPosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position added", result)
}

// RenamePosition implements DepartmentHandler.
func (h *departmentHandlerImpl) RenamePosition(w http.ResponseWriter, r *http.Request) {
	position, ok := positionParam(w, r)
	if !ok {
		return
	}

	var req department.RenamePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode rename position request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.DepartmentID = chi.URLParam(r, "departmentID")
	req.OldName = position

	result, err := h.departmentService.RenamePosition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position renamed", result)
}

// DeletePosition implements DepartmentHandler.
func (h *departmentHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	position, ok := positionParam(w, r)
	if !ok {
		return
	}

	result, err := h.departmentService.DeletePosition(r.Context(), department.PositionRequest{
		DepartmentID: chi.URLParam(r, "departmentID"),
		Name:         position,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted", result)
}

// positionParam decodes the {position} path segment; position names may
// contain spaces and slashes.
func positionParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	position, err := url.PathUnescape(chi.URLParam(r, "position"))
	if err != nil {
		response.BadRequest(w, "Invalid position name", nil)
		return "", false
	}
	return position, true
}
