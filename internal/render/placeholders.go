package render

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"imovelhub-api/internal/domain"
)

// PlaceholderKind tags what a placeholder renders, so formatting is decided
// by the registry instead of string sniffing at substitution time.
type PlaceholderKind int

const (
	KindText PlaceholderKind = iota
	KindCurrency
	KindArea
	KindInteger
	KindDate
	KindURL
	KindImage
)

// Settings per-render options supplied by the caller.
type Settings struct {
	SiteBaseURL string
	// ShowFullAddress discloses street, number and postal code. Public-facing
	// callers must leave this false; it is the privacy boundary for renders.
	ShowFullAddress bool
	// HTML controls HTML-vs-plain-text output of tokens like line_break.
	HTML bool
	// Now is the clock for the current_date placeholder (injectable in tests).
	Now time.Time
	// QRDataURL, when set, renders the qrcode placeholder as an image tag.
	QRDataURL string
}

// Input is the record bag one resolve call works from. Built fresh per
// render and discarded afterwards.
type Input struct {
	Property *domain.Property
	Company  *domain.Company
	Settings Settings
}

// Placeholder one named value the resolver computes.
type Placeholder struct {
	Key     string
	Kind    PlaceholderKind
	Extract func(in Input) string
}

// Registry is the fixed placeholder vocabulary. Layout tokens
// (images, photos_grid) are deliberately absent: the assembler owns them and
// the resolver leaves unknown tokens verbatim.
var Registry = []Placeholder{
	{"title", KindText, func(in Input) string { return in.Property.Title }},
	{"code", KindText, func(in Input) string { return in.Property.Code }},
	{"purpose", KindText, func(in Input) string { return PurposeLabel(in.Property.Purpose) }},
	{"description", KindText, func(in Input) string { return in.Property.Description }},

	{"price", KindCurrency, func(in Input) string { return FormatCurrency(mainPrice(in.Property)) }},
	{"sale_price", KindCurrency, func(in Input) string { return FormatCurrency(in.Property.SalePrice) }},
	{"rental_price", KindCurrency, func(in Input) string { return FormatCurrency(in.Property.RentalPrice) }},
	{"condominium_fee", KindCurrency, func(in Input) string { return FormatCurrency(in.Property.CondominiumFee) }},
	{"iptu", KindCurrency, func(in Input) string { return FormatCurrency(in.Property.IPTU) }},

	{"bedrooms", KindInteger, func(in Input) string { return FormatInt(in.Property.Bedrooms) }},
	{"suites", KindInteger, func(in Input) string { return FormatInt(in.Property.Suites) }},
	{"bathrooms", KindInteger, func(in Input) string { return FormatInt(in.Property.Bathrooms) }},
	{"covered_parking", KindInteger, func(in Input) string { return FormatInt(in.Property.CoveredParking) }},
	{"uncovered_parking", KindInteger, func(in Input) string { return FormatInt(in.Property.UncoveredParking) }},
	{"parking_spaces", KindInteger, func(in Input) string { return FormatInt(in.Property.ParkingTotal()) }},
	{"parking_total", KindInteger, func(in Input) string { return FormatInt(in.Property.ParkingTotal()) }},

	{"total_area", KindArea, func(in Input) string { return FormatArea(in.Property.TotalArea) }},
	{"useful_area", KindArea, func(in Input) string { return FormatArea(in.Property.UsefulArea) }},

	{"neighborhood", KindText, func(in Input) string { return in.Property.Neighborhood }},
	{"city", KindText, func(in Input) string { return in.Property.City }},
	{"state", KindText, func(in Input) string { return in.Property.State }},
	{"street", KindText, func(in Input) string { return disclosed(in, in.Property.Street) }},
	{"number", KindText, func(in Input) string { return disclosed(in, in.Property.Number) }},
	{"complement", KindText, func(in Input) string { return disclosed(in, in.Property.Complement) }},
	{"postal_code", KindText, func(in Input) string { return disclosed(in, in.Property.PostalCode) }},
	{"full_address", KindText, func(in Input) string { return FullAddress(in.Property, in.Settings.ShowFullAddress) }},
	{"public_address", KindText, func(in Input) string { return PublicAddress(in.Property) }},

	{"owner_name", KindText, func(in Input) string { return in.Property.OwnerName }},
	{"owner_cpf_cnpj", KindText, func(in Input) string { return in.Property.OwnerCPFCNPJ }},
	{"owner_email", KindText, func(in Input) string { return in.Property.OwnerEmail }},
	{"owner_phone", KindText, func(in Input) string { return in.Property.OwnerPhone }},

	{"agency_name", KindText, func(in Input) string { return in.Company.Name }},
	{"company_logo", KindURL, func(in Input) string { return in.Company.LogoURL }},
	{"logo", KindURL, func(in Input) string { return in.Company.LogoURL }},
	{"contact_phone", KindText, func(in Input) string { return in.Company.Phone }},
	{"contact_email", KindText, func(in Input) string { return in.Company.Email }},
	{"contact_whatsapp", KindText, func(in Input) string { return in.Company.WhatsApp }},

	{"property_url", KindURL, func(in Input) string {
		return PublicPropertyURL(in.Settings.SiteBaseURL, in.Company.Slug, in.Property.PropertyID)
	}},
	{"qrcode", KindImage, func(in Input) string {
		if in.Settings.QRDataURL == "" {
			return ""
		}
		return `<img src="` + in.Settings.QRDataURL + `" class="qr-code" alt="QR" />`
	}},
	{"current_date", KindDate, func(in Input) string { return FormatDate(in.Settings.Now) }},
	{"line_break", KindText, func(in Input) string {
		if in.Settings.HTML {
			return "<br>"
		}
		return "\n"
	}},
}

// BuildValues computes the full placeholder map for one render: the typed
// registry first, then a mirror of every primitive property/company field
// so templates can reference columns the registry does not name. Computed
// keys are never overwritten by the mirror pass.
func BuildValues(in Input) map[string]string {
	values := make(map[string]string, len(Registry)+48)
	for _, ph := range Registry {
		values[ph.Key] = ph.Extract(in)
	}
	mirrorPrimitives(values, "", in.Property, addressFieldSet(in.Settings.ShowFullAddress))
	mirrorPrimitives(values, "company_", in.Company, nil)
	return values
}

// addressFieldSet lists mirror keys suppressed on redacted renders.
func addressFieldSet(showFull bool) map[string]bool {
	if showFull {
		return nil
	}
	return map[string]bool{
		"street":      true,
		"number":      true,
		"complement":  true,
		"postal_code": true,
	}
}

// mirrorPrimitives copies primitive struct fields (by db tag name, with an
// optional prefix) into the value map, skipping keys already present and
// keys in the suppress set.
func mirrorPrimitives(values map[string]string, prefix string, record any, suppress map[string]bool) {
	v := reflect.ValueOf(record)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		key := prefix + tag
		if _, exists := values[key]; exists {
			continue
		}
		if suppress[tag] {
			values[key] = ""
			continue
		}
		s, ok := primitiveString(v.Field(i))
		if !ok {
			continue
		}
		values[key] = s
	}
}

func primitiveString(f reflect.Value) (string, bool) {
	if f.Kind() == reflect.Ptr {
		if f.IsNil() {
			return "", true
		}
		f = f.Elem()
	}
	switch f.Kind() {
	case reflect.String:
		return f.String(), true
	case reflect.Bool:
		return formatBool(f.Bool()), true
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(f.Float()), true
	}
	return "", false
}

func mainPrice(p *domain.Property) *float64 {
	if p.SalePrice != nil {
		return p.SalePrice
	}
	return p.RentalPrice
}

func disclosed(in Input, v string) string {
	if !in.Settings.ShowFullAddress {
		return ""
	}
	return v
}

// FullAddress composes the disclosed address. When showFull is false it
// falls back to the redacted public form; callers cannot bypass that here.
func FullAddress(p *domain.Property, showFull bool) string {
	if !showFull {
		return PublicAddress(p)
	}
	var parts []string
	streetLine := p.Street
	if streetLine != "" && p.Number != "" {
		streetLine += ", " + p.Number
	}
	if streetLine != "" {
		parts = append(parts, streetLine)
	}
	if p.Neighborhood != "" {
		parts = append(parts, p.Neighborhood)
	}
	cityLine := p.City
	if cityLine != "" && p.State != "" {
		cityLine += " - " + p.State
	}
	if cityLine != "" {
		parts = append(parts, cityLine)
	}
	if p.PostalCode != "" {
		parts = append(parts, "CEP "+p.PostalCode)
	}
	return strings.Join(parts, ", ")
}

// PublicAddress is the redacted address used on public-facing renders:
// neighborhood, city and state only.
func PublicAddress(p *domain.Property) string {
	var parts []string
	if p.Neighborhood != "" {
		parts = append(parts, p.Neighborhood)
	}
	cityLine := p.City
	if cityLine != "" && p.State != "" {
		cityLine += " - " + p.State
	}
	if cityLine != "" {
		parts = append(parts, cityLine)
	}
	return strings.Join(parts, ", ")
}

// PublicPropertyURL builds the public listing URL from the site base,
// company slug and property id.
func PublicPropertyURL(base, slug, propertyID string) string {
	return strings.TrimRight(base, "/") + "/" + slug + "/imovel/" + propertyID
}
