package repository

import (
	"telehealth-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(db *gorm.DB, account *entity.Account) error
	FindByID(db *gorm.DB, id int64) (*entity.Account, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Account, error)
	UpdateVerified(db *gorm.DB, id int64, verified bool) (int64, error)
	CountByRole(db *gorm.DB, role entity.AccountRole, verifiedOnly bool) (int64, error)
}
