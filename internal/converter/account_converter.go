package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

// AccountToResponse converts an Account entity to AccountResponse DTO; the password hash never leaves here.
func AccountToResponse(account *entity.Account) *dto.AccountResponse {
	if account == nil {
		return nil
	}

	return &dto.AccountResponse{
		ID:         account.ID,
		Email:      account.Email,
		Name:       account.Name,
		Phone:      account.Phone,
		Role:       string(account.Role),
		IsVerified: account.IsVerified,
		CreatedAt:  account.CreatedAt,
	}
}
