package domain

import "time"

// Property purpose (what the listing offers)
const (
	PurposeSale   = "sale"
	PurposeRental = "rental"
	PurposeBoth   = "sale_rental"
)

// Property status
const (
	PropertyStatusActive   = "active"
	PropertyStatusDraft    = "draft"
	PropertyStatusSold     = "sold"
	PropertyStatusRented   = "rented"
	PropertyStatusArchived = "archived"
)

// Property is the wide, denormalized listing record (properties table).
// Every render fetches it fresh; nothing here is cached between renders.
type Property struct {
	PropertyID string `db:"property_id" json:"property_id"` // UUID, PRIMARY KEY
	CompanyID  string `db:"company_id" json:"company_id"`   // UUID, FK companies

	// Identification
	Title   string `db:"title" json:"title"`     // VARCHAR(255), NOT NULL
	Code    string `db:"code" json:"code"`       // VARCHAR(50), reference code shown to clients
	Purpose string `db:"purpose" json:"purpose"` // sale / rental / sale_rental
	Status  string `db:"status" json:"status"`   // active / draft / sold / rented / archived
	Kind    string `db:"kind" json:"kind"`       // house / apartment / lot / commercial ...

	// Values (nullable: a rental-only listing has no sale price)
	SalePrice      *float64 `db:"sale_price" json:"sale_price"`
	RentalPrice    *float64 `db:"rental_price" json:"rental_price"`
	CondominiumFee *float64 `db:"condominium_fee" json:"condominium_fee"`
	IPTU           *float64 `db:"iptu" json:"iptu"`

	// Rooms and parking
	Bedrooms         *int `db:"bedrooms" json:"bedrooms"`
	Suites           *int `db:"suites" json:"suites"`
	Bathrooms        *int `db:"bathrooms" json:"bathrooms"`
	CoveredParking   *int `db:"covered_parking" json:"covered_parking"`
	UncoveredParking *int `db:"uncovered_parking" json:"uncovered_parking"`

	// Areas (m²)
	TotalArea  *float64 `db:"total_area" json:"total_area"`
	UsefulArea *float64 `db:"useful_area" json:"useful_area"`

	// Address
	Street       string `db:"street" json:"street"`
	Number       string `db:"number" json:"number"`
	Complement   string `db:"complement" json:"complement"`
	Neighborhood string `db:"neighborhood" json:"neighborhood"`
	City         string `db:"city" json:"city"`
	State        string `db:"state" json:"state"`
	PostalCode   string `db:"postal_code" json:"postal_code"`

	// Owner (back-office only; never rendered on public templates unless
	// the template explicitly asks for owner fields)
	OwnerName    string `db:"owner_name" json:"owner_name"`
	OwnerCPFCNPJ string `db:"owner_cpf_cnpj" json:"owner_cpf_cnpj"`
	OwnerEmail   string `db:"owner_email" json:"owner_email"`
	OwnerPhone   string `db:"owner_phone" json:"owner_phone"`

	Description string   `db:"description" json:"description"` // TEXT
	Features    []string `db:"features" json:"features"`       // JSONB array of feature labels

	Images []PropertyImage `db:"-" json:"images"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ParkingTotal sums covered and uncovered spaces. Returns nil when neither
// field is set, so templates can render an empty string rather than "0".
func (p *Property) ParkingTotal() *int {
	if p.CoveredParking == nil && p.UncoveredParking == nil {
		return nil
	}
	total := 0
	if p.CoveredParking != nil {
		total += *p.CoveredParking
	}
	if p.UncoveredParking != nil {
		total += *p.UncoveredParking
	}
	return &total
}
