package converter

import (
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
)

func PharmacyToResponse(p *entity.Pharmacy) *dto.PharmacyResponse {
	if p == nil {
		return nil
	}

	return &dto.PharmacyResponse{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		Phone:         p.Phone,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		LicenseNumber: p.LicenseNumber,
		IsOpen:        p.IsOpen,
		CreatedAt:     p.CreatedAt,
	}
}

func PharmaciesToResponses(pharmacies []entity.Pharmacy) []dto.PharmacyResponse {
	responses := make([]dto.PharmacyResponse, len(pharmacies))
	for i := range pharmacies {
		responses[i] = *PharmacyToResponse(&pharmacies[i])
	}
	return responses
}

func MedicineToResponse(m *entity.Medicine) *dto.MedicineResponse {
	if m == nil {
		return nil
	}

	return &dto.MedicineResponse{
		ID:                   m.ID,
		Name:                 m.Name,
		GenericName:          m.GenericName,
		Manufacturer:         m.Manufacturer,
		Description:          m.Description,
		RequiresPrescription: m.RequiresPrescription,
	}
}

func InventoryItemsToResponses(items []entity.PharmacyInventory) []dto.InventoryItemResponse {
	responses := make([]dto.InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = *InventoryItemToResponse(&items[i])
	}
	return responses
}

func InventoryItemToResponse(item *entity.PharmacyInventory) *dto.InventoryItemResponse {
	if item == nil {
		return nil
	}

	return &dto.InventoryItemResponse{
		ID:          item.ID,
		PharmacyID:  item.PharmacyID,
		MedicineID:  item.MedicineID,
		Stock:       item.Stock,
		Price:       item.Price,
		LastUpdated: item.LastUpdated,
		Medicine:    MedicineToResponse(item.Medicine),
		Pharmacy:    PharmacyToResponse(item.Pharmacy),
	}
}
