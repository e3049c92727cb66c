package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"telehealth-api/internal/converter"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/domain/repository"
	"telehealth-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPharmacyNotFound   = errors.New("pharmacy not found")
	ErrMedicineNotFound   = errors.New("medicine not found")
	ErrSearchTermRequired = errors.New("search term is required")
)

type PharmacyUsecase interface {
	ListPharmacies(ctx context.Context) (*dto.PharmacyListResponse, error)
	CreatePharmacy(ctx context.Context, req *dto.CreatePharmacyRequest) (*dto.PharmacyResponse, error)
	CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	SetInventory(ctx context.Context, pharmacyID int64, req *dto.SetInventoryRequest) (*dto.InventoryItemResponse, error)
	GetInventory(ctx context.Context, pharmacyID int64) (*dto.InventoryListResponse, error)
	SearchMedicine(ctx context.Context, name string) (*dto.InventoryListResponse, error)
}

type pharmacyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	pharmacyRepo  repository.PharmacyRepository
	medicineRepo  repository.MedicineRepository
	inventoryRepo repository.InventoryRepository
	auditService  service.AuditService
}

func NewPharmacyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	pharmacyRepo repository.PharmacyRepository,
	medicineRepo repository.MedicineRepository,
	inventoryRepo repository.InventoryRepository,
	auditService service.AuditService,
) PharmacyUsecase {
	return &pharmacyUsecase{
		db:            db,
		log:           log,
		pharmacyRepo:  pharmacyRepo,
		medicineRepo:  medicineRepo,
		inventoryRepo: inventoryRepo,
		auditService:  auditService,
	}
}

func (u *pharmacyUsecase) ListPharmacies(ctx context.Context) (*dto.PharmacyListResponse, error) {
	pharmacies, err := u.pharmacyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list pharmacies: %+v", err)
		return nil, err
	}

	return &dto.PharmacyListResponse{
		Pharmacies: converter.PharmaciesToResponses(pharmacies),
		Total:      len(pharmacies),
	}, nil
}

func (u *pharmacyUsecase) CreatePharmacy(ctx context.Context, req *dto.CreatePharmacyRequest) (*dto.PharmacyResponse, error) {
	isOpen := true
	if req.IsOpen != nil {
		isOpen = *req.IsOpen
	}
	pharmacy := &entity.Pharmacy{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		LicenseNumber: req.LicenseNumber,
		IsOpen:        isOpen,
	}
	if err := u.pharmacyRepo.Create(u.db.WithContext(ctx), pharmacy); err != nil {
		u.log.Warnf("Failed to create pharmacy: %+v", err)
		return nil, err
	}

	return converter.PharmacyToResponse(pharmacy), nil
}

func (u *pharmacyUsecase) CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	medicine := &entity.Medicine{
		Name:                 req.Name,
		GenericName:          req.GenericName,
		Manufacturer:         req.Manufacturer,
		Description:          req.Description,
		RequiresPrescription: req.RequiresPrescription,
	}
	if err := u.medicineRepo.Create(u.db.WithContext(ctx), medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	return converter.MedicineToResponse(medicine), nil
}

// SetInventory replaces the stock and price a pharmacy holds for one medicine.
func (u *pharmacyUsecase) SetInventory(ctx context.Context, pharmacyID int64, req *dto.SetInventoryRequest) (*dto.InventoryItemResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	pharmacy, err := u.pharmacyRepo.FindByID(tx, pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy %d: %+v", pharmacyID, err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	medicine, err := u.medicineRepo.FindByID(tx, req.MedicineID)
	if err != nil {
		u.log.Warnf("Failed to find medicine %d: %+v", req.MedicineID, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	item := &entity.PharmacyInventory{
		PharmacyID:  pharmacyID,
		MedicineID:  req.MedicineID,
		Stock:       req.Stock,
		Price:       req.Price.Round(2),
		LastUpdated: time.Now(),
	}
	if err := u.inventoryRepo.Upsert(tx, item); err != nil {
		u.log.Warnf("Failed to upsert inventory: %+v", err)
		return nil, err
	}

	saved, err := u.inventoryRepo.FindByPharmacyAndMedicine(tx, pharmacyID, req.MedicineID)
	if err != nil || saved == nil {
		u.log.Warnf("Failed to reload inventory: %+v", err)
		saved = item
		saved.Medicine = medicine
	}

	if err := u.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionInventoryUpdate, "pharmacy_inventory", saved.ID, nil, converter.InventoryItemToResponse(saved)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InventoryItemToResponse(saved), nil
}

func (u *pharmacyUsecase) GetInventory(ctx context.Context, pharmacyID int64) (*dto.InventoryListResponse, error) {
	db := u.db.WithContext(ctx)

	pharmacy, err := u.pharmacyRepo.FindByID(db, pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacy %d: %+v", pharmacyID, err)
		return nil, err
	}
	if pharmacy == nil {
		return nil, ErrPharmacyNotFound
	}

	items, err := u.inventoryRepo.FindByPharmacyID(db, pharmacyID)
	if err != nil {
		u.log.Warnf("Failed to find inventory for pharmacy %d: %+v", pharmacyID, err)
		return nil, err
	}

	return &dto.InventoryListResponse{
		Items: converter.InventoryItemsToResponses(items),
		Total: len(items),
	}, nil
}

func (u *pharmacyUsecase) SearchMedicine(ctx context.Context, name string) (*dto.InventoryListResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrSearchTermRequired
	}

	items, err := u.inventoryRepo.SearchByMedicineName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to search medicine %q: %+v", name, err)
		return nil, err
	}

	return &dto.InventoryListResponse{
		Items: converter.InventoryItemsToResponses(items),
		Total: len(items),
	}, nil
}
