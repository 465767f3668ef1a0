package mapping

import (
	"strconv"
	"strings"
	"time"

	"github.com/buildcore/vendor-intake/internal/models"
)

// textFields are passed through unmodified when present and omitted when
// absent; the board renders phone columns as free text, so they live here.
var textFields = []string{
	"taxId",
	"mainContactName",
	"additionalContactName",
	"vendorAddress",
	"certifications",
	"travelNotes",
	"mainContactPhone",
	"additionalPhone",
}

var emailFields = []string{"mainContactEmail", "additionalContactEmail"}

var numberFields = []string{"numCrews", "travelRadius", "travelPeople"}

// paymentLabels normalizes form payment values to the board's label spelling.
var paymentLabels = map[string]string{
	"ACH":          "ACH",
	"Check":        "CHECK",
	"Virtual Card": "Virtual Card",
}

// Transformer turns a raw submission into the board's column-value document.
// It is a pure function of the submission, the mapping table and the injected
// clock: it never fails, and fields it cannot interpret are omitted or
// defaulted per the table's policies.
type Transformer struct {
	now func() time.Time
}

func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

// NewTransformerWithClock injects the wall clock used for system-stamped dates.
func NewTransformerWithClock(now func() time.Time) *Transformer {
	return &Transformer{now: now}
}

// Transform builds the column-value document for one submission.
func (t *Transformer) Transform(sub models.Submission) models.ColumnValues {
	cols := models.ColumnValues{}

	// System stamps present on every submission.
	today := t.now().Format("2006-01-02")
	cols[ColumnStatus] = models.Label{Label: DefaultStatus}
	cols[ColumnSource] = models.Label{Label: SourceLabel}
	cols[ColumnDateCreated] = models.Date{Date: today}

	for _, key := range textFields {
		if v := sub.Get(key); v != "" {
			cols[ColumnID(key)] = v
		}
	}

	for _, key := range emailFields {
		if v := sub.Get(key); v != "" {
			cols[ColumnID(key)] = models.Email{Email: v, Text: v}
		}
	}

	for _, key := range numberFields {
		if v := sub.Get(key); v != "" {
			cols[ColumnID(key)] = parseNumber(v, Fields[key].Default)
		}
	}

	cols[ColumnID("primaryMarket")] = models.Label{Label: singleLabel(sub.Get("primaryMarket"), Fields["primaryMarket"])}

	trade := sub.Get("primaryTrade")
	if trade == "Other" && sub.Get("primaryTradeOther") != "" {
		trade = sub.Get("primaryTradeOther")
	}
	cols[ColumnID("primaryTrade")] = models.Label{Label: singleLabel(trade, Fields["primaryTrade"])}

	payment := sub.Get("paymentMethod")
	if normalized, ok := paymentLabels[payment]; ok {
		payment = normalized
	}
	cols[ColumnID("paymentMethod")] = models.Label{Label: singleLabel(payment, Fields["paymentMethod"])}

	// Service lines: the column renders a single label, so the first
	// selection wins and the full list is preserved as a notes line.
	var serviceLineNote string
	serviceLines := sub.All("serviceLine")
	if len(serviceLines) == 0 {
		cols[ColumnID("serviceLine")] = models.Label{Label: Fields["serviceLine"].Default}
	} else {
		cols[ColumnID("serviceLine")] = models.Label{Label: serviceLines[0]}
		if len(serviceLines) > 1 {
			serviceLineNote = "Service Lines: " + strings.Join(serviceLines, ", ")
		}
	}

	// Secondary markets: bounded dropdown, overflow preserved as a notes line.
	var marketNote string
	if markets := sub.All("secondaryMarkets"); len(markets) > 0 {
		kept := markets
		if len(markets) > MaxDropdownLabels {
			kept = markets[:MaxDropdownLabels]
			marketNote = "Additional Markets: " + strings.Join(markets[MaxDropdownLabels:], ", ")
		}
		cols[ColumnID("secondaryMarkets")] = models.Dropdown{Labels: kept}
	}

	// Services fan out to one checkbox column per trade. Unselected trades
	// are written false so an update clears stale checks.
	var otherServicesNote string
	if services := sub.All("services"); len(services) > 0 {
		for _, columnID := range ServiceColumns {
			cols[columnID] = models.Checkbox{Checked: false}
		}
		// Values with no checkbox column are dropped or routed to the
		// "Other Services" notes line, per UnknownValuePolicy.
		var extras []string
		for _, service := range services {
			if service == "Other" {
				if other := sub.Get("servicesOther"); other != "" {
					extras = append(extras, other)
				}
				continue
			}
			columnID, known := ServiceColumns[service]
			if !known {
				if UnknownValuePolicy != PolicyDrop {
					extras = append(extras, service)
				}
				continue
			}
			cols[columnID] = models.Checkbox{Checked: true}
		}
		if len(extras) > 0 {
			otherServicesNote = "Other Services: " + strings.Join(extras, ", ")
		}
	}

	if v := sub.Get("willTravel"); v != "" {
		label := "No"
		if v == "Yes" {
			label = "Yes"
		}
		cols[ColumnID("willTravel")] = models.Label{Label: label}
	}

	// An expiration date on file implies the certificate was received.
	if v := sub.Get("glExpiration"); v != "" {
		cols[ColumnID("glExpiration")] = models.Date{Date: v}
		cols[ColumnGLReceived] = models.Label{Label: ReceivedLabel}
	}
	if v := sub.Get("wcExpiration"); v != "" {
		cols[ColumnID("wcExpiration")] = models.Date{Date: v}
		cols[ColumnWCReceived] = models.Label{Label: ReceivedLabel}
	}

	if note := buildNotes(sub, serviceLineNote, marketNote, otherServicesNote); note != "" {
		cols[ColumnNotes] = note
	}

	return cols
}

// buildNotes concatenates the free-text contributions, one per line, in a
// fixed order. Empty contributions are skipped; an empty result means the
// notes column is omitted entirely.
func buildNotes(sub models.Submission, serviceLineNote, marketNote, otherServicesNote string) string {
	var parts []string

	if serviceLineNote != "" {
		parts = append(parts, serviceLineNote)
	}
	if marketNote != "" {
		parts = append(parts, marketNote)
	}
	if v := sub.Get("notes"); v != "" {
		parts = append(parts, v)
	}
	if v := sub.Get("glPolicyNumber"); v != "" {
		parts = append(parts, "GL Policy #: "+v)
	}
	if v := sub.Get("wcPolicyNumber"); v != "" {
		parts = append(parts, "WC Policy #: "+v)
	}
	if referral := sub.Get("referralSource"); referral != "" {
		switch {
		case referral == "Employee" && sub.Get("referralEmployeeName") != "":
			referral = "Employee - " + sub.Get("referralEmployeeName")
		case referral == "Other" && sub.Get("referralSourceOther") != "":
			referral = "Other - " + sub.Get("referralSourceOther")
		}
		parts = append(parts, "Referral: "+referral)
	}
	if otherServicesNote != "" {
		parts = append(parts, otherServicesNote)
	}

	return strings.Join(parts, "\n")
}

func singleLabel(value string, field Field) string {
	if value == "" && MissingFieldPolicy == PolicyDefault {
		return field.Default
	}
	return value
}

func parseNumber(value, fallback string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		n, _ = strconv.Atoi(fallback)
	}
	return n
}
