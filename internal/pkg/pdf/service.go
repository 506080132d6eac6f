// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/your-org/mattress-storefront/internal/config"
	"github.com/your-org/mattress-storefront/internal/domain/order"
	"github.com/your-org/mattress-storefront/internal/pkg/money"
)

// ErrDisabled is returned when receipt rendering is switched off
var ErrDisabled = errors.New("receipt rendering is disabled")

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": money.Format,
}).Parse(receiptHTML))

// Service renders order receipts
type Service struct {
	company config.CompanyConfig
	receipt config.ReceiptConfig
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	if cfg.Receipt.WkhtmltopdfPath != "" {
		wkhtmltopdf.SetPath(cfg.Receipt.WkhtmltopdfPath)
	}
	return &Service{
		company: cfg.Company,
		receipt: cfg.Receipt,
	}
}

// Enabled reports whether receipts can be rendered
func (s *Service) Enabled() bool {
	return s.receipt.Enabled
}

// GenerateReceipt renders an order confirmation as a PDF
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	if !s.receipt.Enabled {
		return nil, ErrDisabled
	}

	htmlContent, err := s.generateHTML(ReceiptData{Order: o, Company: s.company})
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeLetter)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data ReceiptData) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	Order   *order.Order
	Company config.CompanyConfig
}

const receiptHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Order.OrderNumber}}</title>
    <style>
        body { font-family: Georgia, serif; margin: 0; padding: 24px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 16px; margin-bottom: 24px; }
        .title { font-size: 26px; font-weight: bold; color: #1e3a5f; }
        .section-title { font-size: 15px; font-weight: bold; margin: 16px 0 8px; }
        .items { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
        .items th, .items td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items th { background-color: #f8f9fa; }
        .num { text-align: right; width: 90px; }
        .totals { float: right; width: 300px; border-collapse: collapse; }
        .totals td { padding: 6px 8px; border-bottom: 1px solid #eee; }
        .total-row td { font-size: 18px; font-weight: bold; border-top: 2px solid #333; }
        .footer { clear: both; margin-top: 48px; padding-top: 16px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>{{.Company.Name}}</h1>
        <p>{{.Company.Address}}</p>
        <p>{{.Company.Phone}} &middot; {{.Company.Email}} &middot; {{.Company.Website}}</p>
        <div class="title">ORDER RECEIPT</div>
        <p><strong>Order #:</strong> {{.Order.OrderNumber}}</p>
        <p><strong>Date:</strong> {{.Order.CreatedAt.Format "January 2, 2006"}}</p>
        <p><strong>Status:</strong> {{.Order.Status}}</p>
    </div>

    <div class="section-title">Ship To</div>
    {{with .Order.ShippingAddress}}
    <p><strong>{{.FirstName}} {{.LastName}}</strong></p>
    <p>{{.Address}}{{if .Apartment}}, {{.Apartment}}{{end}}</p>
    <p>{{.City}}, {{.State}} {{.ZipCode}}</p>
    {{end}}
    <p>{{.Order.Email}} &middot; {{.Order.Phone}}</p>

    <div class="section-title">Payment</div>
    <p>{{.Order.Payment.CardholderName}}, card ending in {{.Order.Payment.CardLast4}}</p>

    <table class="items">
        <thead>
            <tr>
                <th>Mattress</th>
                <th>Size</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td>{{.SizeLabel}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .UnitPrice}}</td>
                <td class="num">{{money .LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr><td>Subtotal</td><td class="num">{{money .Order.SubtotalAmount}}</td></tr>
        <tr><td>Shipping</td><td class="num">{{if eq .Order.ShippingAmount 0}}Free{{else}}{{money .Order.ShippingAmount}}{{end}}</td></tr>
        <tr><td>Tax</td><td class="num">{{money .Order.TaxAmount}}</td></tr>
        <tr class="total-row"><td>Total</td><td class="num">{{money .Order.TotalAmount}}</td></tr>
    </table>

    <div class="footer">
        <p>Thank you for shopping with {{.Company.Name}}!</p>
        <p>Questions about your order? Contact us at {{.Company.Email}} or {{.Company.Phone}}</p>
    </div>
</body>
</html>
`
