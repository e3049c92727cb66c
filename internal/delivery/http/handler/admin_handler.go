package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.Stats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

func (h *AdminHandler) PendingDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.PendingDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pending doctors")
		return
	}

	response.Success(w, http.StatusOK, "Pending doctors retrieved successfully", doctors)
}

func (h *AdminHandler) PendingConsultations(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.adminUsecase.PendingConsultations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pending consultations")
		return
	}

	response.Success(w, http.StatusOK, "Pending consultations retrieved successfully", consultations)
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	logs, err := h.adminUsecase.AuditLogs(r.Context(), limit)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}

func (h *AdminHandler) VerifyDoctor(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.NotFound(w, "Doctor not found")
		return
	}

	var req dto.VerifyDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.adminUsecase.VerifyDoctor(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to verify doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor verification updated", doctor)
}
