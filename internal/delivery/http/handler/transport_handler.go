package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/usecase"
	"telehealth-api/pkg/response"
	"telehealth-api/pkg/validator"

	"github.com/shopspring/decimal"
)

type TransportHandler struct {
	transportUsecase usecase.TransportUsecase
	validator        *validator.CustomValidator
}

func NewTransportHandler(transportUsecase usecase.TransportUsecase, validator *validator.CustomValidator) *TransportHandler {
	return &TransportHandler{
		transportUsecase: transportUsecase,
		validator:        validator,
	}
}

func (h *TransportHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.transportUsecase.ListProviders(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeTransportError(w, err, "Failed to get transport providers")
		return
	}

	response.Success(w, http.StatusOK, "Transport providers retrieved successfully", providers)
}

func (h *TransportHandler) ListAvailableProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.transportUsecase.ListAvailableProviders(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeTransportError(w, err, "Failed to get available transport providers")
		return
	}

	response.Success(w, http.StatusOK, "Available transport providers retrieved successfully", providers)
}

func (h *TransportHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.transportUsecase.CreateProvider(r.Context(), &req)
	if err != nil {
		writeTransportError(w, err, "Failed to create transport provider")
		return
	}

	response.Success(w, http.StatusOK, "Transport provider created successfully", provider)
}

func (h *TransportHandler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Transport provider not found")
		return
	}

	var req dto.UpdateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	provider, err := h.transportUsecase.UpdateProvider(r.Context(), id, &req)
	if err != nil {
		writeTransportError(w, err, "Failed to update transport provider")
		return
	}

	response.Success(w, http.StatusOK, "Transport provider updated successfully", provider)
}

func (h *TransportHandler) QuoteFare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Transport provider not found")
		return
	}

	var distance *decimal.Decimal
	if raw := r.URL.Query().Get("distanceKm"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(w, "distanceKm must be a number")
			return
		}
		distance = &parsed
	}

	quote, err := h.transportUsecase.QuoteFare(r.Context(), id, distance)
	if err != nil {
		writeTransportError(w, err, "Failed to quote fare")
		return
	}

	response.Success(w, http.StatusOK, "Fare estimated successfully", quote)
}

func (h *TransportHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.transportUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		writeTransportError(w, err, "Failed to create transport booking")
		return
	}

	response.Success(w, http.StatusOK, "Transport booking created successfully", booking)
}

func (h *TransportHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Transport booking not found")
		return
	}

	booking, err := h.transportUsecase.GetBooking(r.Context(), id)
	if err != nil {
		writeTransportError(w, err, "Failed to get transport booking")
		return
	}

	response.Success(w, http.StatusOK, "Transport booking retrieved successfully", booking)
}

func (h *TransportHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Transport booking not found")
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.transportUsecase.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		writeTransportError(w, err, "Failed to update transport booking")
		return
	}

	response.Success(w, http.StatusOK, "Transport booking updated successfully", booking)
}

func (h *TransportHandler) ListPendingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.transportUsecase.ListPendingBookings(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pending bookings")
		return
	}

	response.Success(w, http.StatusOK, "Pending bookings retrieved successfully", bookings)
}

func (h *TransportHandler) ListBookingsByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "patientId")
	if !ok {
		response.NotFound(w, "Patient not found")
		return
	}

	bookings, err := h.transportUsecase.ListBookingsByPatient(r.Context(), patientID)
	if err != nil {
		response.InternalServerError(w, "Failed to get transport bookings")
		return
	}

	response.Success(w, http.StatusOK, "Transport bookings retrieved successfully", bookings)
}

func (h *TransportHandler) ListBookingsByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := pathID(r, "providerId")
	if !ok {
		response.NotFound(w, "Transport provider not found")
		return
	}

	bookings, err := h.transportUsecase.ListBookingsByProvider(r.Context(), providerID)
	if err != nil {
		response.InternalServerError(w, "Failed to get transport bookings")
		return
	}

	response.Success(w, http.StatusOK, "Transport bookings retrieved successfully", bookings)
}

func writeTransportError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrTransportTypeRequired):
		response.BadRequest(w, "type query parameter is required")
	case errors.Is(err, usecase.ErrInvalidTransportType),
		errors.Is(err, usecase.ErrInvalidDistance),
		errors.Is(err, usecase.ErrActualFareNotAllowed):
		response.BadRequest(w, err.Error())
	case errors.Is(err, usecase.ErrProviderNotFound):
		response.NotFound(w, "Transport provider not found")
	case errors.Is(err, usecase.ErrBookingNotFound):
		response.NotFound(w, "Transport booking not found")
	case errors.Is(err, usecase.ErrPatientNotFound):
		response.NotFound(w, "Patient not found")
	case errors.Is(err, usecase.ErrProviderUnavailable):
		response.Conflict(w, "Transport provider is not available")
	case errors.Is(err, usecase.ErrIllegalTransition):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
