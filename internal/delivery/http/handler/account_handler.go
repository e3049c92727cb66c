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

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
	}
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	account, err := h.accountUsecase.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			response.Conflict(w, "Email already exists")
			return
		}
		response.InternalServerError(w, "Failed to register account")
		return
	}

	response.Success(w, http.StatusOK, "Account registered successfully", account)
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	account, err := h.accountUsecase.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		response.InternalServerError(w, "Failed to login")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", account)
}
