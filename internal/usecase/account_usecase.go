package usecase

import (
	"context"
	"errors"
	"strings"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountUsecase registers accounts and checks credentials.
// Sessions are issued by the external identity provider, so Login only verifies the password.
type AccountUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AccountResponse, error)
}

type accountUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	accountRepo  repository.AccountRepository
	patientRepo  repository.PatientProfileRepository
	auditService service.AuditService
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	accountRepo repository.AccountRepository,
	patientRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) AccountUsecase {
	return &accountUsecase{
		db:           db,
		log:          log,
		accountRepo:  accountRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// Register creates the account and, for patients, an empty patient profile in the same transaction.
func (u *accountUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := u.accountRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to check email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	account := &entity.Account{
		Email:    email,
		Password: string(hashedPassword),
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     entity.AccountRole(req.Role),
	}
	if err := u.accountRepo.Create(tx, account); err != nil {
		u.log.Warnf("Failed to create account: %+v", err)
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	if account.IsPatient() {
		if err := u.patientRepo.Create(tx, &entity.PatientProfile{UserID: account.ID}); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, int64Ptr(account.ID), entity.AuditActionAccountRegister, "account", account.ID, converter.AccountToResponse(account)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Account registered: id=%d, role=%s", account.ID, account.Role)
	return converter.AccountToResponse(account), nil
}

func (u *accountUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AccountResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := u.accountRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find account by email: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := u.auditService.LogCreate(ctx, u.db, int64Ptr(account.ID), entity.AuditActionAccountLogin, "account", account.ID, nil); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	return converter.AccountToResponse(account), nil
}
