package repository

import (
	"errors"

	"telehealth-api/internal/domain/entity"
	domainRepo "telehealth-api/internal/domain/repository"

	"gorm.io/gorm"
)

type accountRepository struct{}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(db *gorm.DB, account *entity.Account) error {
	return db.Create(account).Error
}

func (r *accountRepository) FindByID(db *gorm.DB, id int64) (*entity.Account, error) {
	var account entity.Account
	err := db.Where("id = ?", id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(db *gorm.DB, email string) (*entity.Account, error) {
	var account entity.Account
	err := db.Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) UpdateVerified(db *gorm.DB, id int64, verified bool) (int64, error) {
	result := db.Model(&entity.Account{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	return result.RowsAffected, result.Error
}

func (r *accountRepository) CountByRole(db *gorm.DB, role entity.AccountRole, verifiedOnly bool) (int64, error) {
	var count int64
	query := db.Model(&entity.Account{}).Where("role = ?", role)
	if verifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}
