package s3archive

import (
	"path"
	"strings"
	"time"
)

// displayNames maps form file fields to the names shown on the board and in
// notifications.
var displayNames = map[string]string{
	"w9Form":          "W9 Form",
	"glInsurance":     "General Liability Insurance",
	"wcInsurance":     "Workers Compensation Insurance",
	"businessLicense": "Business License",
}

// DisplayName returns the human-readable name for a file field, falling back
// to the field name itself.
func DisplayName(field string) string {
	if name, ok := displayNames[field]; ok {
		return name
	}
	return field
}

// FolderName is the per-submission folder: vendor name plus submission date,
// so resubmissions on different days archive side by side.
func FolderName(vendorName string, day time.Time) string {
	return sanitizeSegment(vendorName) + " - " + day.Format("2006-01-02")
}

// BuildKey constructs the object key for one attachment.
func BuildKey(prefix, folder, filename string) string {
	return path.Join(prefix, folder, sanitizeSegment(filename))
}

// sanitizeSegment keeps user-supplied names from escaping their key segment.
func sanitizeSegment(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	return strings.TrimSpace(s)
}
