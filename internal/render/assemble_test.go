package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovelhub-api/internal/domain"
)

func testImages(n int) []domain.PropertyImage {
	images := make([]domain.PropertyImage, 0, n)
	for idx := 0; idx < n; idx++ {
		images = append(images, domain.PropertyImage{
			ImageID:      fmt.Sprintf("img-%d", idx),
			URL:          fmt.Sprintf("https://storage.example.com/%d.jpg", idx),
			DisplayOrder: idx,
		})
	}
	return images
}

func shareTemplate(placement string, columns, max int) *domain.Template {
	return &domain.Template{
		TemplateID:     "tpl-1",
		Kind:           domain.TemplateKindShare,
		PhotoColumns:   columns,
		PhotoPlacement: placement,
		MaxPhotos:      max,
	}
}

func TestImageGridCapsAndSortsCoverFirst(t *testing.T) {
	images := testImages(5)
	images[3].IsCover = true

	grid := ImageGrid(images, 2, 3)

	assert.Equal(t, 3, strings.Count(grid, "<img"))
	// cover image leads even though its display order is 3
	coverPos := strings.Index(grid, "3.jpg")
	firstPos := strings.Index(grid, "0.jpg")
	require.GreaterOrEqual(t, coverPos, 0)
	require.GreaterOrEqual(t, firstPos, 0)
	assert.Less(t, coverPos, firstPos)
	// capped at 3: cover + first two by display order
	assert.NotContains(t, grid, "4.jpg")
	assert.Contains(t, grid, "grid-template-columns:repeat(2,1fr)")
}

func TestImageGridFewerImagesThanCap(t *testing.T) {
	grid := ImageGrid(testImages(2), 3, 10)
	assert.Equal(t, 2, strings.Count(grid, "<img"))
}

func TestImageGridEmpty(t *testing.T) {
	assert.Equal(t, "", ImageGrid(nil, 2, 6))
}

func TestImageGridHidesBrokenImages(t *testing.T) {
	grid := ImageGrid(testImages(1), 1, 1)
	assert.Contains(t, grid, `onerror="this.style.display='none'"`)
}

func TestAssemblePlacementBeforeAndAfter(t *testing.T) {
	body := "<p>hello</p>"
	images := testImages(1)

	before := Assemble(body, images, shareTemplate(domain.PlacementBeforeText, 2, 4))
	assert.True(t, strings.HasPrefix(before, `<div class="photo-grid"`))
	assert.True(t, strings.HasSuffix(before, body))

	after := Assemble(body, images, shareTemplate(domain.PlacementAfterText, 2, 4))
	assert.True(t, strings.HasPrefix(after, body))
	assert.True(t, strings.HasSuffix(after, "</div>"))
}

func TestAssembleIntercalatedAfterSecondParagraph(t *testing.T) {
	body := "<p>one</p><p>two</p><p>three</p><p>four</p>"
	out := Assemble(body, testImages(1), shareTemplate(domain.PlacementIntercalated, 2, 4))

	gridPos := strings.Index(out, `<div class="photo-grid"`)
	secondClose := strings.Index(out, "<p>three</p>")
	require.GreaterOrEqual(t, gridPos, 0)
	// grid sits between the 2nd closing tag and the 3rd paragraph
	assert.Less(t, strings.Index(out, "<p>two</p>"), gridPos)
	assert.Less(t, gridPos, secondClose)
}

func TestAssembleIntercalatedShortBodyAppends(t *testing.T) {
	body := "<p>one</p><p>two</p>"
	out := Assemble(body, testImages(1), shareTemplate(domain.PlacementIntercalated, 2, 4))
	assert.True(t, strings.HasPrefix(out, body))
	assert.True(t, strings.HasSuffix(out, "</div>"))
}

func TestAssembleExplicitTokenWinsOverPolicy(t *testing.T) {
	body := "<p>top</p>{{photos_grid}}<p>bottom</p>"
	out := Assemble(body, testImages(1), shareTemplate(domain.PlacementBeforeText, 2, 4))

	assert.NotContains(t, out, "{{photos_grid}}")
	gridPos := strings.Index(out, `<div class="photo-grid"`)
	assert.Less(t, strings.Index(out, "<p>top</p>"), gridPos)
	assert.Less(t, gridPos, strings.Index(out, "<p>bottom</p>"))
	// placement policy not applied on top of the explicit token
	assert.Equal(t, 1, strings.Count(out, "photo-grid"))
}

func TestAssembleNoImagesLeavesBodyUntouched(t *testing.T) {
	body := "<p>just text</p>"
	out := Assemble(body, nil, shareTemplate(domain.PlacementAfterText, 2, 4))
	assert.Equal(t, body, out)

	// explicit token resolves to nothing rather than lingering
	out = Assemble("<p>a</p>{{images}}", nil, shareTemplate(domain.PlacementAfterText, 2, 4))
	assert.Equal(t, "<p>a</p>", out)
}

func TestCombineDocumentsPageBreaks(t *testing.T) {
	out := CombineDocuments([]string{"<div>a</div>", "<div>b</div>", "<div>c</div>"})

	assert.Equal(t, 2, strings.Count(out, pageBreakDiv))
	assert.False(t, strings.HasSuffix(out, pageBreakDiv), "no trailing page break after last document")
}

func TestCombineDocumentsSingle(t *testing.T) {
	out := CombineDocuments([]string{"<div>only</div>"})
	assert.Equal(t, "<div>only</div>", out)
}

func TestPrintDocumentChromeAndCSS(t *testing.T) {
	company := testCompany()
	doc := PrintDocument("Casa X", company, []string{"<p>body-1</p>", "<p>body-2</p>"})

	assert.Contains(t, doc, "@page { size: A4; margin: 1.5cm; }")
	assert.Contains(t, doc, "page-break-after: always")
	assert.Contains(t, doc, company.Name)
	assert.Contains(t, doc, company.LogoURL)
	assert.Equal(t, 1, strings.Count(doc, pageBreakDiv))
	assert.Contains(t, doc, "<p>body-1</p>")
	assert.Contains(t, doc, "<p>body-2</p>")
}

func TestErrorCardNamesProperty(t *testing.T) {
	card := ErrorCard("prop-9", assert.AnError)
	assert.Contains(t, card, "prop-9")
	assert.Contains(t, card, "render-error")
}

func TestCompactDocumentFixedLayout(t *testing.T) {
	in := testInput(false)
	in.Property.Images = testImages(8)
	in.Property.Features = []string{"Piscina", "Churrasqueira"}

	doc := CompactDocument(in.Property, in.Company, in)

	assert.Contains(t, doc, "compact-header")
	assert.Contains(t, doc, "R$ 450.000,00")
	assert.Contains(t, doc, "compact-metrics")
	assert.Contains(t, doc, "Piscina")
	// one-sheet photo grid is capped at six
	assert.Equal(t, 6, strings.Count(doc, "<img"))
	assert.Contains(t, doc, "https://imovelhub.com.br/horizonte/imovel/prop-1")
	// redacted render keeps the street out of the one-sheet as well
	assert.NotContains(t, doc, "Rua das Acácias")
}
