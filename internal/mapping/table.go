// Package mapping owns the translation from vendor application form fields to
// the remote board's column schema: a static registry of field-to-column
// bindings plus the transformer that applies per-shape formatting rules.
package mapping

// Shape is the value-wrapping convention a column type requires on write.
type Shape int

const (
	// ShapeText passes the string through as-is; absent fields emit nothing.
	ShapeText Shape = iota
	// ShapeSingleLabel wraps as {label}; absent fields fall back to the
	// entry's default label because the column requires one to render.
	ShapeSingleLabel
	// ShapeMultiLabel is an ordered selection against a column that only
	// renders one label (first selection wins, full list goes to notes).
	ShapeMultiLabel
	// ShapeDropdown is an ordered selection against a bounded multi-select
	// column (capped at MaxDropdownLabels, overflow goes to notes).
	ShapeDropdown
	// ShapeEmail wraps as {email, text}.
	ShapeEmail
	// ShapeDate wraps as {date: "YYYY-MM-DD"}.
	ShapeDate
	// ShapeNumber parses to an integer, falling back to the entry's default
	// when the value does not parse.
	ShapeNumber
	// ShapeYesNoLabel maps a Yes/No source value onto a status label.
	ShapeYesNoLabel
)

// Policy names the two observable product decisions baked into the table.
type Policy int

const (
	// PolicyDrop silently discards values the table does not know about.
	PolicyDrop Policy = iota
	// PolicyDefault substitutes a business-constant default for an absent field.
	PolicyDefault
)

// UnknownValuePolicy governs service/trade values with no registered column:
// they are dropped, not errors, so new form options never hard-fail a
// submission. Typos lose data; accepted trade-off.
const UnknownValuePolicy = PolicyDrop

// MissingFieldPolicy governs absent single-label fields: the column still
// needs a label to render, so a default is written instead of omitting.
const MissingFieldPolicy = PolicyDefault

// MaxDropdownLabels is the board's cap on labels in one dropdown column.
const MaxDropdownLabels = 10

// Field is one entry of the mapping table: internal form field key, target
// column id, value shape, and the default used when MissingFieldPolicy applies.
type Field struct {
	Key      string
	ColumnID string
	Shape    Shape
	Default  string
}

// Fields is the mapping table, keyed by internal form field name. Column ids
// are the production board's identifiers. Loaded once, never mutated.
var Fields = map[string]Field{
	// Text columns.
	"taxId":                 {Key: "taxId", ColumnID: "business_tax___mknb862c", Shape: ShapeText},
	"mainContactName":       {Key: "mainContactName", ColumnID: "contact_name_mknb7bpw", Shape: ShapeText},
	"additionalContactName": {Key: "additionalContactName", ColumnID: "text_mknbhej1", Shape: ShapeText},
	"vendorAddress":         {Key: "vendorAddress", ColumnID: "address_mknbb1r0", Shape: ShapeText},
	"certifications":        {Key: "certifications", ColumnID: "certifications_mknb9hp6", Shape: ShapeText},
	"travelNotes":           {Key: "travelNotes", ColumnID: "long_text_mkq15as", Shape: ShapeText},
	"mainContactPhone":      {Key: "mainContactPhone", ColumnID: "phone___mknbzy27", Shape: ShapeText},
	"additionalPhone":       {Key: "additionalPhone", ColumnID: "additional_phone___mknb9e36", Shape: ShapeText},

	// Email columns.
	"mainContactEmail":       {Key: "mainContactEmail", ColumnID: "email_mknbjaey", Shape: ShapeEmail},
	"additionalContactEmail": {Key: "additionalContactEmail", ColumnID: "office_email_mknb9g20", Shape: ShapeEmail},

	// Number columns.
	"numCrews":     {Key: "numCrews", ColumnID: "__of_crews_mknb728w", Shape: ShapeNumber, Default: "1"},
	"travelRadius": {Key: "travelRadius", ColumnID: "text_mkq1gg2q", Shape: ShapeNumber, Default: "0"},
	"travelPeople": {Key: "travelPeople", ColumnID: "text_mkq1h1bg", Shape: ShapeNumber, Default: "0"},

	// Single-label columns with business-constant defaults.
	"primaryMarket": {Key: "primaryMarket", ColumnID: "market_mknbpdg8", Shape: ShapeSingleLabel, Default: "Dallas"},
	"primaryTrade":  {Key: "primaryTrade", ColumnID: "color_mkp06wz8", Shape: ShapeSingleLabel, Default: "General Contractor"},
	"paymentMethod": {Key: "paymentMethod", ColumnID: "color_mknbqdny", Shape: ShapeSingleLabel, Default: "ACH"},
	"serviceLine":   {Key: "serviceLine", ColumnID: "color_mknsnftt", Shape: ShapeMultiLabel, Default: "SFR"},

	// Bounded multi-select.
	"secondaryMarkets": {Key: "secondaryMarkets", ColumnID: "additional_markets_mknb88ce", Shape: ShapeDropdown},

	// Date columns.
	"glExpiration": {Key: "glExpiration", ColumnID: "coi_expiration_date__mknbah9e", Shape: ShapeDate},
	"wcExpiration": {Key: "wcExpiration", ColumnID: "date_mknt4qgc", Shape: ShapeDate},

	// Yes/No status columns.
	"willTravel": {Key: "willTravel", ColumnID: "color_mkq1qzbz", Shape: ShapeYesNoLabel},
}

// System-stamped and derived columns, not driven by a single form field.
const (
	ColumnStatus          = "status_mknbjepv"
	ColumnSource          = "color_mkw8j9vt"
	ColumnDateCreated     = "date_mknj9jy0"
	ColumnContractEmailed = "vendor_contract_emailed_mknb2z9y"
	ColumnGLReceived      = "cois_received__mknbnv4c"
	ColumnWCReceived      = "color_mknt71s4"
	ColumnNotes           = "notes_mknbkfs0"
	ColumnFileLinks       = "long_text_mkwgnz91"
)

// Labels stamped on every submission.
const (
	DefaultStatus = "Pending"
	SourceLabel   = "BC Website"
	ReceivedLabel = "Received"
)

// ServiceColumns fans the multi-select "services" field out to one checkbox
// column per trade. The board has no one-field-to-many-columns concept, so
// every trade the form can emit is enumerated here; values not in this table
// are dropped per UnknownValuePolicy.
var ServiceColumns = map[string]string{
	"Cabinets":            "cabinets_mknb8tjp",
	"Carpentry":           "carpentry_mknb4fh7",
	"Carpets":             "color_mkp0h6dx",
	"Cleaning":            "cleaning_mknb7sn1",
	"Countertops":         "color_mknzjyg6",
	"Demo":                "demo_mknb3j9z",
	"Drywall":             "drywall_mknbkyqp",
	"Duct Cleaning":       "color_mkp0y8ek",
	"Electrical":          "electrical_mknb3c41",
	"Flooring":            "flooring_mknb8cd",
	"Foundation":          "color_mkp0tq8h",
	"Garage Door":         "color_mkp0h6g",
	"General Contractor":  "color_mknpfcry",
	"Glass/Windows":       "color_mkp0daf8",
	"Handyman/Small Jobs": "color_mkp0mq7g",
	"HVAC":                "hvac_mknbd7gd",
	"Landscaping":         "color_mkp0t492",
	"Painting":            "paint_mknb1j8g",
	"Pest Control":        "pest_control_mknbnz61",
	"Plumbing":            "plumbing_mknb347f",
	"Roofing":             "roofing_mknbcej7",
	"Rain Gutters":        "color_mkp07dhg",
	"Septic":              "color_mkp0vqta",
	"Tile":                "tile_mknby26b",
	"Water Restoration":   "color_mkp06rfe",
}

// ColumnID returns the board column bound to an internal field key, or ""
// when the field has no binding.
func ColumnID(field string) string {
	return Fields[field].ColumnID
}
