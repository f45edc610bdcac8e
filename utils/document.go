package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"nhatro-backend/models"
)

// Printable documents for contracts and invoices. Pure functions of
// already-loaded records; callers are responsible for authorization.

var contractTmpl = template.Must(template.New("contract").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Contract {{.ContractNumber}}</title></head>
<body>
<h1>Room Rental Contract</h1>
<p><strong>Contract No:</strong> {{.ContractNumber}}</p>
<p><strong>Motel:</strong> {{.Room.Motel.Name}}, {{.Room.Motel.Address}}</p>
<p><strong>Room:</strong> {{.Room.RoomNumber}}</p>
<p><strong>Period:</strong> {{.StartDate.Format "2006-01-02"}}{{if .EndDate}} to {{.EndDate.Format "2006-01-02"}}{{end}}</p>
<p><strong>Rent:</strong> {{printf "%.0f" .RentPrice}} / month</p>
<p><strong>Deposit:</strong> {{printf "%.0f" .DepositAmount}}</p>
<h2>Tenants</h2>
<table border="1" cellpadding="4">
<tr><th>Name</th><th>Phone</th><th>Identity Card</th><th>Relationship</th><th>Primary</th></tr>
{{range .Tenants}}<tr><td>{{.FullName}}</td><td>{{.Phone}}</td><td>{{.IdentityCard}}</td><td>{{.Relationship}}</td><td>{{if .IsPrimary}}Yes{{else}}No{{end}}</td></tr>
{{end}}</table>
<p>Status: {{.Status}}</p>
</body></html>
`))

type invoiceDocData struct {
	Invoice *models.Invoice
	Items   []struct {
		Label  string  `json:"label"`
		Amount float64 `json:"amount"`
	}
	Period string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Invoice {{.Invoice.Reference}}</title></head>
<body>
<h1>Invoice</h1>
<p><strong>Reference:</strong> {{.Invoice.Reference}}</p>
<p><strong>Contract:</strong> {{.Invoice.Contract.ContractNumber}}</p>
<p><strong>Period:</strong> {{.Period}}</p>
<table border="1" cellpadding="4">
<tr><th>Item</th><th>Amount</th></tr>
{{range .Items}}<tr><td>{{.Label}}</td><td>{{printf "%.0f" .Amount}}</td></tr>
{{end}}<tr><th>Total</th><th>{{printf "%.0f" .Invoice.Amount}}</th></tr>
</table>
<p>Status: {{.Invoice.Status}}{{if .Invoice.DueDate}}, due {{.Invoice.DueDate.Format "2006-01-02"}}{{end}}</p>
</body></html>
`))

// RenderContractDocument renders a contract (with room, motel and roster
// preloaded) into a printable HTML document.
func RenderContractDocument(contract *models.Contract) ([]byte, error) {
	var buf bytes.Buffer
	if err := contractTmpl.Execute(&buf, contract); err != nil {
		return nil, fmt.Errorf("failed to render contract document: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderInvoiceDocument renders an invoice (with contract preloaded) into a
// printable HTML document.
func RenderInvoiceDocument(invoice *models.Invoice) ([]byte, error) {
	data := invoiceDocData{
		Invoice: invoice,
		Period:  fmt.Sprintf("%02d/%d", invoice.PeriodMonth, invoice.PeriodYear),
	}
	if len(invoice.LineItems) > 0 {
		if err := json.Unmarshal(invoice.LineItems, &data.Items); err != nil {
			return nil, fmt.Errorf("failed to decode invoice line items: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render invoice document: %w", err)
	}
	return buf.Bytes(), nil
}

// DocumentFilename builds the download name for a rendered document.
func DocumentFilename(prefix, reference string) string {
	return fmt.Sprintf("%s-%s-%s.html", prefix, reference, time.Now().Format("20060102"))
}
