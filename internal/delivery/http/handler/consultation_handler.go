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

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.CreateConsultation(r.Context(), &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to create consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation created successfully", consultation)
}

func (h *ConsultationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	consultation, err := h.consultationUsecase.GetConsultation(r.Context(), id)
	if err != nil {
		writeConsultationError(w, err, "Failed to get consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

func (h *ConsultationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	var req dto.UpdateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.UpdateConsultation(r.Context(), id, &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to update consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation updated successfully", consultation)
}

func (h *ConsultationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	consultation, err := h.consultationUsecase.AcceptConsultation(r.Context(), id)
	if err != nil {
		writeConsultationError(w, err, "Failed to accept consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation accepted", consultation)
}

func (h *ConsultationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	var req dto.CompleteConsultationRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.CompleteConsultation(r.Context(), id, &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to complete consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation completed", consultation)
}

func (h *ConsultationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Consultation not found")
		return
	}

	var req dto.CancelConsultationRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.CancelConsultation(r.Context(), id, &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to cancel consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation cancelled", consultation)
}

func (h *ConsultationHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	consultations, err := h.consultationUsecase.ListByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) ListByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "doctorId")
	if !ok {
		response.NotFound(w, "Doctor not found")
		return
	}

	consultations, err := h.consultationUsecase.ListByDoctor(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func writeConsultationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrConsultationNotFound):
		response.NotFound(w, "Consultation not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrDoctorUnavailable):
		response.Conflict(w, "Doctor is not available")
	case errors.Is(err, usecase.ErrIllegalTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
