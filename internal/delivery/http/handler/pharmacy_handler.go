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

type PharmacyHandler struct {
	pharmacyUsecase usecase.PharmacyUsecase
	validator       *validator.CustomValidator
}

func NewPharmacyHandler(pharmacyUsecase usecase.PharmacyUsecase, validator *validator.CustomValidator) *PharmacyHandler {
	return &PharmacyHandler{
		pharmacyUsecase: pharmacyUsecase,
		validator:       validator,
	}
}

func (h *PharmacyHandler) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	pharmacies, err := h.pharmacyUsecase.ListPharmacies(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get pharmacies")
		return
	}

	response.Success(w, http.StatusOK, "Pharmacies retrieved successfully", pharmacies)
}

func (h *PharmacyHandler) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePharmacyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pharmacy, err := h.pharmacyUsecase.CreatePharmacy(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create pharmacy")
		return
	}

	response.Success(w, http.StatusOK, "Pharmacy created successfully", pharmacy)
}

func (h *PharmacyHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Pharmacy not found")
		return
	}

	inventory, err := h.pharmacyUsecase.GetInventory(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrPharmacyNotFound) {
			response.NotFound(w, "Pharmacy not found")
			return
		}
		response.InternalServerError(w, "Failed to get inventory")
		return
	}

	response.Success(w, http.StatusOK, "Inventory retrieved successfully", inventory)
}

func (h *PharmacyHandler) SetInventory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.NotFound(w, "Pharmacy not found")
		return
	}

	var req dto.SetInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	item, err := h.pharmacyUsecase.SetInventory(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPharmacyNotFound):
			response.NotFound(w, "Pharmacy not found")
		case errors.Is(err, usecase.ErrMedicineNotFound):
			response.NotFound(w, "Medicine not found")
		default:
			response.InternalServerError(w, "Failed to update inventory")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inventory updated successfully", item)
}

func (h *PharmacyHandler) CreateMedicine(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.pharmacyUsecase.CreateMedicine(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine created successfully", medicine)
}

func (h *PharmacyHandler) SearchMedicine(w http.ResponseWriter, r *http.Request) {
	items, err := h.pharmacyUsecase.SearchMedicine(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		if errors.Is(err, usecase.ErrSearchTermRequired) {
			response.BadRequest(w, "name query parameter is required")
			return
		}
		response.InternalServerError(w, "Failed to search medicine")
		return
	}

	response.Success(w, http.StatusOK, "Medicine search completed", items)
}
