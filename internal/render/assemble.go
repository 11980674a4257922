package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"imovelhub-api/internal/domain"
)

// layoutTokenRe matches the explicit grid-placement tokens. When a template
// carries one, it wins over the positional placement policy.
var layoutTokenRe = regexp.MustCompile(`\{\{\s*(images|photos_grid)\s*\}\}`)

const pageBreakDiv = `<div class="page-break"></div>`

// SortImages orders a listing's images cover-first, then display order.
func SortImages(images []domain.PropertyImage) []domain.PropertyImage {
	sorted := make([]domain.PropertyImage, len(images))
	copy(sorted, images)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsCover != sorted[j].IsCover {
			return sorted[i].IsCover
		}
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return sorted
}

// ImageGrid renders up to max images in a grid of the given column count.
// Broken images hide themselves instead of showing the broken-image icon.
// An empty image list renders no grid at all.
func ImageGrid(images []domain.PropertyImage, columns, max int) string {
	if len(images) == 0 || max <= 0 {
		return ""
	}
	if columns <= 0 {
		columns = 2
	}
	sorted := SortImages(images)
	if len(sorted) > max {
		sorted = sorted[:max]
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="photo-grid" style="display:grid;grid-template-columns:repeat(%d,1fr);gap:8px;">`, columns)
	for _, img := range sorted {
		fmt.Fprintf(&b, `<img src="%s" alt="" onerror="this.style.display='none'" />`, img.URL)
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Assemble composes the resolved body with the listing's photo grid
// according to the template's layout options.
func Assemble(body string, images []domain.PropertyImage, tpl *domain.Template) string {
	grid := ImageGrid(images, tpl.PhotoColumns, tpl.MaxPhotos)

	if layoutTokenRe.MatchString(body) {
		return layoutTokenRe.ReplaceAllString(body, grid)
	}
	if grid == "" {
		return body
	}

	switch tpl.PhotoPlacement {
	case domain.PlacementBeforeText:
		return grid + body
	case domain.PlacementIntercalated:
		return intercalate(body, grid)
	default: // after_text
		return body + grid
	}
}

// intercalate inserts the grid after the second closing paragraph when the
// body has at least three paragraphs, otherwise appends it.
func intercalate(body, grid string) string {
	const closeTag = "</p>"
	if strings.Count(body, closeTag) < 3 {
		return body + grid
	}
	first := strings.Index(body, closeTag)
	second := strings.Index(body[first+len(closeTag):], closeTag)
	cut := first + len(closeTag) + second + len(closeTag)
	return body[:cut] + grid + body[cut:]
}

// CombineDocuments concatenates per-property documents with a page break
// between each pair. No break trails the last document, so batch prints do
// not end on a blank page.
func CombineDocuments(docs []string) string {
	return strings.Join(docs, pageBreakDiv)
}

// ErrorCard is the visible marker rendered in place of a batch item whose
// data failed to load. Batch flows must not drop failing items silently.
func ErrorCard(propertyID string, err error) string {
	return fmt.Sprintf(
		`<div class="render-error"><strong>Imóvel %s</strong><p>Não foi possível carregar este imóvel: %s</p></div>`,
		propertyID, err.Error())
}
