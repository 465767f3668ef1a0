// Package validation checks a raw vendor application against the intake
// rules and reports every violation at once, never just the first.
package validation

import (
	"regexp"
	"strconv"
	"time"

	"github.com/buildcore/vendor-intake/internal/models"
)

var (
	// Permissive on purpose: one @ with a dot somewhere after it.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// EIN XX-XXXXXXX.
	einPattern = regexp.MustCompile(`^\d{2}-\d{7}$`)
	// SSN XXX-XX-XXXX.
	ssnPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	nonDigits  = regexp.MustCompile(`\D`)
)

// requiredFields is the fixed required set with its product-defined messages.
var requiredFields = []models.ValidationError{
	{Field: "vendorName", Message: "Company name is required"},
	{Field: "taxId", Message: "Business Tax ID is required"},
	{Field: "mainContactName", Message: "Main contact name is required"},
	{Field: "mainContactEmail", Message: "Main contact email is required"},
	{Field: "mainContactPhone", Message: "Main contact phone is required"},
	{Field: "vendorAddress", Message: "Business address is required"},
	{Field: "primaryMarket", Message: "Primary market is required"},
	{Field: "primaryTrade", Message: "Primary trade is required"},
	{Field: "numCrews", Message: "Number of crews is required"},
}

var validPaymentMethods = []string{"ACH", "Check", "Virtual Card"}

// Validator runs the intake rules. The clock is injected so the future-date
// checks are testable.
type Validator struct {
	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// NewValidatorWithClock injects the clock used for expiration-date checks.
func NewValidatorWithClock(now func() time.Time) *Validator {
	return &Validator{now: now}
}

// Validate returns every violated rule; an empty slice means the submission
// is acceptable. It never fails.
func (v *Validator) Validate(sub models.Submission) []models.ValidationError {
	errs := []models.ValidationError{}

	for _, req := range requiredFields {
		if sub.Get(req.Field) == "" {
			errs = append(errs, req)
		}
	}

	if email := sub.Get("mainContactEmail"); email != "" && !IsValidEmail(email) {
		errs = append(errs, models.ValidationError{
			Field:   "mainContactEmail",
			Message: "Please enter a valid email address",
		})
	}
	if email := sub.Get("additionalContactEmail"); email != "" && !IsValidEmail(email) {
		errs = append(errs, models.ValidationError{
			Field:   "additionalContactEmail",
			Message: "Please enter a valid additional email address",
		})
	}

	if phone := sub.Get("mainContactPhone"); phone != "" && !IsValidPhone(phone) {
		errs = append(errs, models.ValidationError{
			Field:   "mainContactPhone",
			Message: "Please enter a valid 10-digit phone number",
		})
	}
	if phone := sub.Get("additionalPhone"); phone != "" && !IsValidPhone(phone) {
		errs = append(errs, models.ValidationError{
			Field:   "additionalPhone",
			Message: "Please enter a valid additional phone number",
		})
	}

	if taxID := sub.Get("taxId"); taxID != "" && !IsValidTaxID(taxID) {
		errs = append(errs, models.ValidationError{
			Field:   "taxId",
			Message: "Tax ID must be in format XX-XXXXXXX (EIN) or XXX-XX-XXXX (SSN)",
		})
	}

	if len(sub.All("serviceLine")) == 0 {
		errs = append(errs, models.ValidationError{
			Field:   "serviceLine",
			Message: "Please select at least one service line",
		})
	}
	if len(sub.All("services")) == 0 {
		errs = append(errs, models.ValidationError{
			Field:   "services",
			Message: "Please select at least one service",
		})
	}

	if method := sub.Get("paymentMethod"); method != "" && !contains(validPaymentMethods, method) {
		errs = append(errs, models.ValidationError{
			Field:   "paymentMethod",
			Message: "Please select a valid payment method",
		})
	}

	if crews := sub.Get("numCrews"); crews != "" {
		n, err := strconv.Atoi(crews)
		if err != nil || n < 1 {
			errs = append(errs, models.ValidationError{
				Field:   "numCrews",
				Message: "Number of crews must be at least 1",
			})
		}
	}
	if radius := sub.Get("travelRadius"); radius != "" {
		if _, err := strconv.Atoi(radius); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "travelRadius",
				Message: "Travel radius must be a number",
			})
		}
	}
	if people := sub.Get("travelPeople"); people != "" {
		if _, err := strconv.Atoi(people); err != nil {
			errs = append(errs, models.ValidationError{
				Field:   "travelPeople",
				Message: "Number of people available to travel must be a number",
			})
		}
	}

	if date := sub.Get("glExpiration"); date != "" && !v.isFutureDate(date) {
		errs = append(errs, models.ValidationError{
			Field:   "glExpiration",
			Message: "GL insurance expiration date must be in the future",
		})
	}
	if date := sub.Get("wcExpiration"); date != "" && !v.isFutureDate(date) {
		errs = append(errs, models.ValidationError{
			Field:   "wcExpiration",
			Message: "WC insurance expiration date must be in the future",
		})
	}

	if sub.Get("certification") != "true" {
		errs = append(errs, models.ValidationError{
			Field:   "certification",
			Message: "You must certify that all information is accurate",
		})
	}

	return errs
}

// IsValidEmail reports whether email matches the permissive intake pattern.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone accepts any separator style as long as exactly 10 digits remain
// after stripping non-digits.
func IsValidPhone(phone string) bool {
	return len(nonDigits.ReplaceAllString(phone, "")) == 10
}

// IsValidTaxID accepts exactly the EIN and SSN dashed forms, nothing else.
func IsValidTaxID(taxID string) bool {
	return einPattern.MatchString(taxID) || ssnPattern.MatchString(taxID)
}

// isFutureDate reports whether date (YYYY-MM-DD) is strictly after today's
// calendar date; today itself counts as expired. Unparsable dates fail.
func (v *Validator) isFutureDate(date string) bool {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.After(today)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
