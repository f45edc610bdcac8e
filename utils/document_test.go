package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"nhatro-backend/models"
)

func TestRenderContractDocument(t *testing.T) {
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	contract := &models.Contract{
		ContractNumber: "HD-202501-AB4D93",
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        &end,
		RentPrice:      3000000,
		DepositAmount:  3000000,
		Status:         models.ContractActive,
		Room: models.Room{
			RoomNumber: "101",
			Motel:      models.Motel{Name: "Nha Tro Binh Minh", Address: "12 Le Loi"},
		},
		Tenants: []models.ContractTenant{
			{FullName: "Nguyen Van A", Phone: "0901234567", IdentityCard: "079123456789", IsPrimary: true},
			{FullName: "Tran Thi B", Relationship: "spouse"},
		},
	}

	out, err := RenderContractDocument(contract)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "HD-202501-AB4D93")
	assert.Contains(t, html, "Nha Tro Binh Minh")
	assert.Contains(t, html, "101")
	assert.Contains(t, html, "2025-01-01")
	assert.Contains(t, html, "2025-12-31")
	assert.Contains(t, html, "3000000")
	assert.Contains(t, html, "Nguyen Van A")
	assert.Contains(t, html, "Tran Thi B")
	assert.Contains(t, html, models.ContractActive)
}

func TestRenderInvoiceDocument(t *testing.T) {
	due := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	invoice := &models.Invoice{
		Reference:   "a1b2c3d4",
		PeriodMonth: 1,
		PeriodYear:  2025,
		LineItems:   datatypes.JSON(`[{"label":"Rent","amount":3000000},{"label":"Water","amount":80000}]`),
		Amount:      3080000,
		Status:      models.InvoicePending,
		DueDate:     &due,
		Contract:    models.Contract{ContractNumber: "HD-202501-AB4D93"},
	}

	out, err := RenderInvoiceDocument(invoice)
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "a1b2c3d4")
	assert.Contains(t, html, "HD-202501-AB4D93")
	assert.Contains(t, html, "01/2025")
	assert.Contains(t, html, "Rent")
	assert.Contains(t, html, "Water")
	assert.Contains(t, html, "3080000")
	assert.Contains(t, html, "2025-02-10")
}

func TestRenderInvoiceDocumentBadLineItems(t *testing.T) {
	invoice := &models.Invoice{
		Reference: "a1b2c3d4",
		LineItems: datatypes.JSON(`not json`),
	}
	_, err := RenderInvoiceDocument(invoice)
	require.Error(t, err)
}

func TestDocumentFilename(t *testing.T) {
	name := DocumentFilename("contract", "HD-202501-AB4D93")
	assert.Regexp(t, `^contract-HD-202501-AB4D93-\d{8}\.html$`, name)
}
