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

type DonationHandler struct {
	donationUsecase usecase.DonationUsecase
	validator       *validator.CustomValidator
}

func NewDonationHandler(donationUsecase usecase.DonationUsecase, validator *validator.CustomValidator) *DonationHandler {
	return &DonationHandler{
		donationUsecase: donationUsecase,
		validator:       validator,
	}
}

func (h *DonationHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	donations, err := h.donationUsecase.ListDonations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get donations")
		return
	}

	response.Success(w, http.StatusOK, "Donations retrieved successfully", donations)
}

func (h *DonationHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDonationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	donation, err := h.donationUsecase.CreateDonation(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to record donation")
		return
	}

	response.Success(w, http.StatusOK, "Donation recorded successfully", donation)
}

func (h *DonationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.donationUsecase.DonationStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get donation stats")
		return
	}

	response.Success(w, http.StatusOK, "Donation stats retrieved successfully", stats)
}

func (h *DonationHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.donationUsecase.ListDonationRequests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get donation requests")
		return
	}

	response.Success(w, http.StatusOK, "Donation requests retrieved successfully", requests)
}

func (h *DonationHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDonationRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.donationUsecase.CreateDonationRequest(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to create donation request")
		return
	}

	response.Success(w, http.StatusOK, "Donation request created successfully", request)
}

func (h *DonationHandler) UpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Donation request not found")
		return
	}

	var req dto.UpdateDonationRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	request, err := h.donationUsecase.UpdateDonationRequestStatus(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDonationRequestNotFound):
			response.NotFound(w, "Donation request not found")
		case errors.Is(err, usecase.ErrIllegalTransition):
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update donation request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Donation request updated successfully", request)
}
