package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.CreateDoctorProfile(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAccountNotFound):
			response.NotFound(w, "Account not found")
		case errors.Is(err, usecase.ErrAccountNotDoctor):
			response.BadRequest(w, "Account is not a doctor")
		case errors.Is(err, usecase.ErrDoctorProfileExists):
			response.Conflict(w, "Doctor profile already exists")
		default:
			response.InternalServerError(w, "Failed to create doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile created successfully", doctor)
}

func (h *DoctorHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.ListAvailableDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get available doctors")
		return
	}

	response.Success(w, http.StatusOK, "Available doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.NotFound(w, "Doctor not found")
		return
	}

	doctor, err := h.doctorUsecase.GetDoctorProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get doctor profile")
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile retrieved successfully", doctor)
}

func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.NotFound(w, "Doctor not found")
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.SetAvailability(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to update availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", doctor)
}
