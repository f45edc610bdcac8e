package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhatro-backend/internal/apperr"
	"nhatro-backend/models"
)

func TestCreateInvoiceSumsLineItems(t *testing.T) {
	db := setupTestDB(t)
	contracts := NewContractService(db)
	svc := NewInvoiceService(db)

	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomAvailable)
	contract, err := contracts.Create(validContractInput(room.ID), landlord)
	require.NoError(t, err)

	invoice, err := svc.Create(InvoiceInput{
		ContractID:  contract.ID,
		PeriodMonth: 1,
		PeriodYear:  2025,
		DueDate:     "2025-02-10",
		LineItems: []InvoiceLineItem{
			{Label: "Rent", Amount: 3000000},
			{Label: "Electricity", Amount: 250000},
			{Label: "Water", Amount: 80000},
		},
	}, landlord)
	require.NoError(t, err)

	assert.Equal(t, models.InvoicePending, invoice.Status)
	assert.Equal(t, 3330000.0, invoice.Amount)
	assert.NotEmpty(t, invoice.Reference)
	require.NotNil(t, invoice.DueDate)
}

func TestCreateInvoiceForbiddenForOtherLandlord(t *testing.T) {
	db := setupTestDB(t)
	contracts := NewContractService(db)
	svc := NewInvoiceService(db)

	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	other := seedUser(t, db, models.RoleLandlord, "other@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomAvailable)
	contract, err := contracts.Create(validContractInput(room.ID), landlord)
	require.NoError(t, err)

	_, err = svc.Create(InvoiceInput{
		ContractID:  contract.ID,
		PeriodMonth: 1,
		PeriodYear:  2025,
		LineItems:   []InvoiceLineItem{{Label: "Rent", Amount: 3000000}},
	}, other)
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestMarkPaidTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	contracts := NewContractService(db)
	svc := NewInvoiceService(db)

	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomAvailable)
	contract, err := contracts.Create(validContractInput(room.ID), landlord)
	require.NoError(t, err)

	invoice, err := svc.Create(InvoiceInput{
		ContractID:  contract.ID,
		PeriodMonth: 1,
		PeriodYear:  2025,
		LineItems:   []InvoiceLineItem{{Label: "Rent", Amount: 3000000}},
	}, landlord)
	require.NoError(t, err)

	paid, err := svc.MarkPaid(invoice.ID, landlord)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = svc.MarkPaid(invoice.ID, landlord)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSweepOverdue(t *testing.T) {
	db := setupTestDB(t)
	contracts := NewContractService(db)
	svc := NewInvoiceService(db)

	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomAvailable)
	contract, err := contracts.Create(validContractInput(room.ID), landlord)
	require.NoError(t, err)

	overdue, err := svc.Create(InvoiceInput{
		ContractID:  contract.ID,
		PeriodMonth: 1,
		PeriodYear:  2025,
		DueDate:     "2025-02-10",
		LineItems:   []InvoiceLineItem{{Label: "Rent", Amount: 3000000}},
	}, landlord)
	require.NoError(t, err)

	notDue, err := svc.Create(InvoiceInput{
		ContractID:  contract.ID,
		PeriodMonth: 2,
		PeriodYear:  2025,
		DueDate:     "2025-03-10",
		LineItems:   []InvoiceLineItem{{Label: "Rent", Amount: 3000000}},
	}, landlord)
	require.NoError(t, err)

	now := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	changed, err := svc.SweepOverdue(now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changed)

	var reloaded models.Invoice
	require.NoError(t, db.First(&reloaded, overdue.ID).Error)
	assert.Equal(t, models.InvoiceOverdue, reloaded.Status)
	reloaded = models.Invoice{}
	require.NoError(t, db.First(&reloaded, notDue.ID).Error)
	assert.Equal(t, models.InvoicePending, reloaded.Status)

	// Sweeping again changes nothing.
	changed, err = svc.SweepOverdue(now)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestInvoiceListScopedToTenant(t *testing.T) {
	db := setupTestDB(t)
	contracts := NewContractService(db)
	svc := NewInvoiceService(db)

	landlord := seedUser(t, db, models.RoleLandlord, "landlord@test.local")
	tenant := seedUser(t, db, models.RoleTenant, "tenant@test.local")
	outsider := seedUser(t, db, models.RoleTenant, "outsider@test.local")
	motel := seedMotel(t, db, landlord.ID)
	room := seedRoom(t, db, motel.ID, "101", models.RoomAvailable)

	input := validContractInput(room.ID)
	input.TenantUserID = &tenant.ID
	contract, err := contracts.Create(input, landlord)
	require.NoError(t, err)

	_, err = svc.Create(InvoiceInput{
		ContractID:  contract.ID,
		PeriodMonth: 1,
		PeriodYear:  2025,
		LineItems:   []InvoiceLineItem{{Label: "Rent", Amount: 3000000}},
	}, landlord)
	require.NoError(t, err)

	_, total, err := svc.List(InvoiceFilter{}, tenant)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = svc.List(InvoiceFilter{}, outsider)
	require.NoError(t, err)
	assert.Zero(t, total)
}
