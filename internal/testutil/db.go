// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"

	"telehealth-api/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens an isolated in-memory database with every entity migrated.
// The pool is pinned to a single connection so a shared-cache database
// survives between statements; never use the root handle while a tx is open.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&entity.Account{},
		&entity.DoctorProfile{},
		&entity.PatientProfile{},
		&entity.Consultation{},
		&entity.Rating{},
		&entity.TransportProvider{},
		&entity.TransportBooking{},
		&entity.Pharmacy{},
		&entity.Medicine{},
		&entity.PharmacyInventory{},
		&entity.Donation{},
		&entity.DonationRequest{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// CreateAccount inserts an account with a bcrypt hash of "password123".
func CreateAccount(t *testing.T, db *gorm.DB, email string, role entity.AccountRole, verified bool) *entity.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	account := &entity.Account{
		Email:      email,
		Password:   string(hash),
		Name:       email,
		Role:       role,
		IsVerified: verified,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

// CreateDoctor inserts a doctor account and its profile.
func CreateDoctor(t *testing.T, db *gorm.DB, email string, verified, available bool, rating string) *entity.DoctorProfile {
	t.Helper()

	account := CreateAccount(t, db, email, entity.RoleDoctor, verified)
	profile := &entity.DoctorProfile{
		UserID:          account.ID,
		LicenseNumber:   "LIC-" + email,
		Specialization:  "General Practice",
		Experience:      5,
		Location:        "Nairobi",
		IsAvailable:     available,
		ConsultationFee: decimal.RequireFromString("25.00"),
		Rating:          decimal.RequireFromString(rating),
	}
	if err := db.Omit("User").Create(profile).Error; err != nil {
		t.Fatalf("create doctor profile: %v", err)
	}
	profile.User = account
	return profile
}

// CreateProvider inserts a transport provider.
func CreateProvider(t *testing.T, db *gorm.DB, name string, kind entity.TransportType, available bool, rating string) *entity.TransportProvider {
	t.Helper()

	provider := &entity.TransportProvider{
		Name:        name,
		Phone:       "+254700000000",
		Type:        kind,
		Location:    "Nairobi",
		IsAvailable: available,
		BaseFare:    decimal.RequireFromString("50.00"),
		PerKmRate:   decimal.RequireFromString("12.50"),
		Rating:      decimal.RequireFromString(rating),
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return provider
}
