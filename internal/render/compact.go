package render

import (
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
)

// CompactDocument builds the fixed one-sheet layout for single-property
// print jobs. It ignores the administrator-edited template entirely: price
// header, metric cards, value cards, description, feature tags, photo grid
// and footer are always laid out the same way. It is a parallel rendering
// path next to Assemble, selected explicitly by the caller.
func CompactDocument(p *domain.Property, c *domain.Company, in Input) string {
	var b strings.Builder

	// Price header
	b.WriteString(`<div class="compact-header">`)
	fmt.Fprintf(&b, `<h1>%s</h1>`, p.Title)
	if p.Code != "" {
		fmt.Fprintf(&b, `<span class="compact-code">Ref. %s</span>`, p.Code)
	}
	price := FormatCurrency(mainPrice(p))
	if price != "" {
		fmt.Fprintf(&b, `<div class="compact-price">%s <small>%s</small></div>`, price, PurposeLabel(p.Purpose))
	}
	fmt.Fprintf(&b, `<div class="compact-address">%s</div>`, FullAddress(p, in.Settings.ShowFullAddress))
	b.WriteString(`</div>`)

	// Metric cards
	b.WriteString(`<div class="compact-metrics">`)
	writeMetric(&b, "Quartos", FormatInt(p.Bedrooms))
	writeMetric(&b, "Suítes", FormatInt(p.Suites))
	writeMetric(&b, "Banheiros", FormatInt(p.Bathrooms))
	writeMetric(&b, "Vagas", FormatInt(p.ParkingTotal()))
	writeMetric(&b, "Área total", FormatArea(p.TotalArea))
	writeMetric(&b, "Área útil", FormatArea(p.UsefulArea))
	b.WriteString(`</div>`)

	// Value cards
	b.WriteString(`<div class="compact-values">`)
	writeMetric(&b, "Venda", FormatCurrency(p.SalePrice))
	writeMetric(&b, "Locação", FormatCurrency(p.RentalPrice))
	writeMetric(&b, "Condomínio", FormatCurrency(p.CondominiumFee))
	writeMetric(&b, "IPTU", FormatCurrency(p.IPTU))
	b.WriteString(`</div>`)

	// Description
	if p.Description != "" {
		fmt.Fprintf(&b, `<div class="compact-description"><p>%s</p></div>`, p.Description)
	}

	// Feature tags
	if len(p.Features) > 0 {
		b.WriteString(`<div class="compact-features">`)
		for _, f := range p.Features {
			fmt.Fprintf(&b, `<span class="feature-tag">%s</span>`, f)
		}
		b.WriteString(`</div>`)
	}

	// Photo grid (fixed two columns, six photos on the one-sheet)
	b.WriteString(ImageGrid(p.Images, 2, 6))

	// Footer line with the public URL and optional QR
	url := PublicPropertyURL(in.Settings.SiteBaseURL, c.Slug, p.PropertyID)
	b.WriteString(`<div class="compact-footer">`)
	if in.Settings.QRDataURL != "" {
		fmt.Fprintf(&b, `<img src="%s" class="qr-code" alt="QR" />`, in.Settings.QRDataURL)
	}
	fmt.Fprintf(&b, `<span>%s</span>`, url)
	b.WriteString(`</div>`)

	return b.String()
}

func writeMetric(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, `<div class="metric-card"><span class="metric-value">%s</span><span class="metric-label">%s</span></div>`, value, label)
}
