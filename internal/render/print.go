package render

import (
	"fmt"
	"strings"

	"imovelhub-api/internal/domain"
)

// printCSS is embedded into every print document. The front end opens the
// document in a new window and invokes the browser print dialog; the @page
// rule and the page-break class are the contract it relies on.
const printCSS = `
@page { size: A4; margin: 1.5cm; }
body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 0; }
.document { page-break-inside: avoid; }
.page-break { page-break-after: always; }
.doc-header { display: flex; align-items: center; gap: 12px; border-bottom: 2px solid #ddd; padding-bottom: 8px; margin-bottom: 16px; }
.doc-header img { max-height: 56px; }
.doc-header .company-name { font-size: 18px; font-weight: bold; }
.doc-header .company-contact { margin-left: auto; font-size: 11px; color: #555; text-align: right; }
.doc-footer { border-top: 1px solid #ddd; margin-top: 16px; padding-top: 6px; font-size: 10px; color: #777; text-align: center; }
.photo-grid img { width: 100%; object-fit: cover; }
.qr-code { width: 90px; height: 90px; }
.render-error { border: 1px solid #c00; color: #c00; padding: 12px; margin: 12px 0; }
`

// PrintDocument wraps one or more assembled bodies in a complete printable
// HTML document: per-document header/footer chrome, embedded print CSS and
// page breaks between documents.
func PrintDocument(title string, company *domain.Company, bodies []string) string {
	wrapped := make([]string, 0, len(bodies))
	for _, body := range bodies {
		wrapped = append(wrapped,
			`<div class="document">`+documentHeader(company)+body+documentFooter(company)+`</div>`)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(title)
	b.WriteString("</title><style>")
	b.WriteString(printCSS)
	b.WriteString("</style></head><body>")
	b.WriteString(CombineDocuments(wrapped))
	b.WriteString("</body></html>")
	return b.String()
}

func documentHeader(c *domain.Company) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<div class="doc-header">`)
	if c.LogoURL != "" {
		fmt.Fprintf(&b, `<img src="%s" alt="%s" onerror="this.style.display='none'" />`, c.LogoURL, c.Name)
	}
	fmt.Fprintf(&b, `<span class="company-name">%s</span>`, c.Name)
	contact := joinNonEmpty([]string{c.Phone, c.Email, c.Website}, "<br>")
	if contact != "" {
		fmt.Fprintf(&b, `<span class="company-contact">%s</span>`, contact)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func documentFooter(c *domain.Company) string {
	if c == nil {
		return ""
	}
	line := joinNonEmpty([]string{c.Name, c.Phone, c.Website}, " • ")
	if line == "" {
		return ""
	}
	return `<div class="doc-footer">` + line + `</div>`
}

func joinNonEmpty(parts []string, sep string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
