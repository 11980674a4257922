package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imovelhub-api/internal/domain"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func testProperty() *domain.Property {
	return &domain.Property{
		PropertyID:     "prop-1",
		CompanyID:      "comp-1",
		Title:          "Casa X",
		Code:           "CA-0042",
		Purpose:        domain.PurposeSale,
		SalePrice:      f64(450000),
		CondominiumFee: f64(550.5),
		IPTU:           f64(1200),
		Bedrooms:       i(3),
		Suites:         i(1),
		Bathrooms:      i(2),
		CoveredParking: i(2),
		TotalArea:      f64(250),
		UsefulArea:     f64(180.5),
		Street:         "Rua das Acácias",
		Number:         "120",
		Neighborhood:   "Jardim Europa",
		City:           "São Paulo",
		State:          "SP",
		PostalCode:     "01449-000",
		OwnerName:      "João Silva",
		Description:    "Casa ampla com quintal.",
	}
}

func testCompany() *domain.Company {
	return &domain.Company{
		CompanyID: "comp-1",
		Name:      "Imobiliária Horizonte",
		Slug:      "horizonte",
		LogoURL:   "https://storage.example.com/logo.png",
		Phone:     "(11) 3333-4444",
		WhatsApp:  "5511999998888",
		Email:     "contato@horizonte.com.br",
	}
}

func testInput(showFull bool) Input {
	return Input{
		Property: testProperty(),
		Company:  testCompany(),
		Settings: Settings{
			SiteBaseURL:     "https://imovelhub.com.br",
			ShowFullAddress: showFull,
			Now:             time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestResolveExampleFromTemplate(t *testing.T) {
	out, err := ResolveInput("{{title}} - {{sale_price}}", testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "Casa X - R$ 450.000,00", out)
}

func TestResolveReplacesAllKnownKeys(t *testing.T) {
	in := testInput(true)
	values := BuildValues(in)

	var b strings.Builder
	for key := range values {
		b.WriteString("{{" + key + "}} ")
	}
	out, err := Resolve(b.String(), values)
	require.NoError(t, err)

	for key := range values {
		assert.NotContains(t, out, "{{"+key+"}}", "key %s left unresolved", key)
	}
}

func TestResolveLeavesUnknownKeysVerbatim(t *testing.T) {
	out, err := ResolveInput("{{title}} {{totally_unknown_key}} {{images}}", testInput(false))
	require.NoError(t, err)
	assert.Contains(t, out, "Casa X")
	assert.Contains(t, out, "{{totally_unknown_key}}")
	// layout token is the assembler's business, not the resolver's
	assert.Contains(t, out, "{{images}}")
}

func TestResolveWhitespaceTolerantInsideBraces(t *testing.T) {
	out, err := ResolveInput("{{ title }} / {{  code  }}", testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "Casa X / CA-0042", out)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	out, err := ResolveInput("{{Title}}", testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "{{Title}}", out)
}

func TestResolveIdempotentForFixedClock(t *testing.T) {
	in := testInput(true)
	tpl := "{{title}} {{sale_price}} {{current_date}} {{full_address}}"

	first, err := ResolveInput(tpl, in)
	require.NoError(t, err)
	second, err := ResolveInput(tpl, in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveEmptyTemplateFails(t *testing.T) {
	_, err := ResolveInput("", testInput(false))
	assert.ErrorIs(t, err, ErrEmptyTemplate)

	_, err = ResolveInput("   \n ", testInput(false))
	assert.ErrorIs(t, err, ErrEmptyTemplate)
}

func TestAddressRedaction(t *testing.T) {
	tpl := "{{full_address}} | {{street}} | {{number}} | {{postal_code}} | {{public_address}}"

	redacted, err := ResolveInput(tpl, testInput(false))
	require.NoError(t, err)
	assert.NotContains(t, redacted, "Rua das Acácias")
	assert.NotContains(t, redacted, "120")
	assert.NotContains(t, redacted, "01449-000")
	assert.Contains(t, redacted, "Jardim Europa")
	assert.Contains(t, redacted, "São Paulo - SP")

	full, err := ResolveInput(tpl, testInput(true))
	require.NoError(t, err)
	assert.Contains(t, full, "Rua das Acácias, 120")
	assert.Contains(t, full, "CEP 01449-000")
}

func TestMissingNumericFieldsRenderEmpty(t *testing.T) {
	in := testInput(false)
	in.Property.RentalPrice = nil
	in.Property.Suites = nil

	out, err := ResolveInput("[{{rental_price}}][{{suites}}]", in)
	require.NoError(t, err)
	assert.Equal(t, "[][]", out)
	assert.NotContains(t, out, "null")
	assert.NotContains(t, out, "NaN")
}

func TestMirroredCompanyFields(t *testing.T) {
	out, err := ResolveInput("{{company_whatsapp}} / {{company_name}}", testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "5511999998888 / Imobiliária Horizonte", out)
}

func TestMirrorDoesNotOverwriteComputedKeys(t *testing.T) {
	// "iptu" exists both as a property column and as a computed currency key;
	// the computed formatting must win.
	out, err := ResolveInput("{{iptu}}", testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "R$ 1.200,00", out)
}

func TestParkingTotals(t *testing.T) {
	in := testInput(false)
	in.Property.UncoveredParking = i(1)

	out, err := ResolveInput("{{covered_parking}}+{{uncovered_parking}}={{parking_total}}", in)
	require.NoError(t, err)
	assert.Equal(t, "2+1=3", out)

	in.Property.CoveredParking = nil
	in.Property.UncoveredParking = nil
	out, err = ResolveInput("[{{parking_total}}]", in)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestQRCodeAndPropertyURL(t *testing.T) {
	in := testInput(false)
	in.Settings.QRDataURL = "data:image/png;base64,AAAA"

	out, err := ResolveInput("{{qrcode}} {{property_url}}", in)
	require.NoError(t, err)
	assert.Contains(t, out, `<img src="data:image/png;base64,AAAA"`)
	assert.Contains(t, out, "https://imovelhub.com.br/horizonte/imovel/prop-1")

	in.Settings.QRDataURL = ""
	out, err = ResolveInput("[{{qrcode}}]", in)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestLineBreakToken(t *testing.T) {
	in := testInput(false)
	out, err := ResolveInput("a{{line_break}}b", in)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", out)

	in.Settings.HTML = true
	out, err = ResolveInput("a{{line_break}}b", in)
	require.NoError(t, err)
	assert.Equal(t, "a<br>b", out)
}

func TestCurrentDateUsesInjectedClock(t *testing.T) {
	out, err := ResolveInput("{{current_date}}", testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "15/08/2026", out)
}
