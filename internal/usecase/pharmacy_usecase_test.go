package usecase

import (
	"context"
	"testing"

	"telehealth-api/internal/delivery/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPharmacyInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pharmacy, err := f.pharmacies.CreatePharmacy(ctx, &dto.CreatePharmacyRequest{Name: "Central", Address: "1 Main St"})
	require.NoError(t, err)
	assert.True(t, pharmacy.IsOpen)

	medicine, err := f.pharmacies.CreateMedicine(ctx, &dto.CreateMedicineRequest{Name: "Amoxicillin", RequiresPrescription: true})
	require.NoError(t, err)

	_, err = f.pharmacies.SetInventory(ctx, pharmacy.ID, &dto.SetInventoryRequest{MedicineID: medicine.ID, Stock: 10, Price: decimal.RequireFromString("4.50")})
	require.NoError(t, err)

	item, err := f.pharmacies.SetInventory(ctx, pharmacy.ID, &dto.SetInventoryRequest{MedicineID: medicine.ID, Stock: 3, Price: decimal.RequireFromString("5.00")})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Stock)

	inventory, err := f.pharmacies.GetInventory(ctx, pharmacy.ID)
	require.NoError(t, err)
	require.Equal(t, 1, inventory.Total)
	assert.Equal(t, 3, inventory.Items[0].Stock)
	require.NotNil(t, inventory.Items[0].Medicine)
	assert.Equal(t, "Amoxicillin", inventory.Items[0].Medicine.Name)

	found, err := f.pharmacies.SearchMedicine(ctx, "amoxi")
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	require.NotNil(t, found.Items[0].Pharmacy)
	assert.Equal(t, "Central", found.Items[0].Pharmacy.Name)

	_, err = f.pharmacies.SearchMedicine(ctx, "  ")
	assert.ErrorIs(t, err, ErrSearchTermRequired)

	_, err = f.pharmacies.SetInventory(ctx, 999, &dto.SetInventoryRequest{MedicineID: medicine.ID})
	assert.ErrorIs(t, err, ErrPharmacyNotFound)

	_, err = f.pharmacies.SetInventory(ctx, pharmacy.ID, &dto.SetInventoryRequest{MedicineID: 999})
	assert.ErrorIs(t, err, ErrMedicineNotFound)

	_, err = f.pharmacies.GetInventory(ctx, 999)
	assert.ErrorIs(t, err, ErrPharmacyNotFound)
}
