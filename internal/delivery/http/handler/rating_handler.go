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

type RatingHandler struct {
	ratingUsecase usecase.RatingUsecase
	validator     *validator.CustomValidator
}

func NewRatingHandler(ratingUsecase usecase.RatingUsecase, validator *validator.CustomValidator) *RatingHandler {
	return &RatingHandler{
		ratingUsecase: ratingUsecase,
		validator:     validator,
	}
}

func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rating, err := h.ratingUsecase.SubmitRating(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRatingScore), errors.Is(err, usecase.ErrRatingMismatch):
			response.BadRequest(w, err.Error())
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrConsultationNotFound):
			response.NotFound(w, "Consultation not found")
		case errors.Is(err, usecase.ErrAlreadyRated), errors.Is(err, usecase.ErrConsultationNotCompleted):
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to submit rating")
		}
		return
	}

	response.Success(w, http.StatusOK, "Rating submitted successfully", rating)
}
