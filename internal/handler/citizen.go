package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/civreg/civreg/internal/domain"
	"github.com/civreg/civreg/internal/service"
)

// CitizenHandler handles citizen CRUD HTTP requests.
type CitizenHandler struct {
	citizens *service.CitizenService
}

// NewCitizenHandler creates a new CitizenHandler.
func NewCitizenHandler(citizens *service.CitizenService) *CitizenHandler {
	return &CitizenHandler{citizens: citizens}
}

type citizenRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BirthDate     string `json:"birth_date"`
	Address       string `json:"address"`
	MaritalStatus string `json:"marital_status"`
	Citizenship   string `json:"citizenship"`
}

func (req citizenRequest) toInput() service.CitizenInput {
	return service.CitizenInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		BirthDate:     req.BirthDate,
		Address:       req.Address,
		MaritalStatus: req.MaritalStatus,
		Citizenship:   req.Citizenship,
	}
}

// HandleCreate processes citizen creation.
// POST /citizens
// Response: 201 {"message":"Citizen added successfully","id":N}
func (h *CitizenHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req citizenRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	citizen, err := h.citizens.Create(r.Context(), req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}
		slog.Error("create citizen", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Citizen added successfully",
		"id":      citizen.ID,
	})
}

// HandleList returns every citizen record. Filtering and pagination happen
// client-side over this full snapshot.
// GET /citizens
func (h *CitizenHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	citizens, err := h.citizens.List(r.Context())
	if err != nil {
		slog.Error("list citizens", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toCitizenDTOs(citizens))
}

// HandleUpdate replaces all fields of an existing citizen.
// PUT /citizens/{id}
func (h *CitizenHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid citizen id")
		return
	}

	var req citizenRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	_, err = h.citizens.Update(r.Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Citizen not found")
			return
		}
		slog.Error("update citizen", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Citizen updated successfully"})
}

// HandleDelete removes a citizen record.
// DELETE /citizens/{id}
func (h *CitizenHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid citizen id")
		return
	}

	if err := h.citizens.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Citizen not found")
			return
		}
		slog.Error("delete citizen", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Citizen deleted successfully"})
}
