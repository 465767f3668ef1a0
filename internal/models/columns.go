package models

// ColumnValues is the wire payload for one board item: column id to a value
// whose shape matches the column type (label, email, date, dropdown, checkbox,
// plain string or number).
type ColumnValues map[string]any

// Label is the payload for status and single-select dropdown columns.
type Label struct {
	Label string `json:"label"`
}

// Email is the payload for email columns. The board requires both subfields
// to render a clickable address.
type Email struct {
	Email string `json:"email"`
	Text  string `json:"text"`
}

// Date is the payload for date columns; Date is an ISO YYYY-MM-DD string.
type Date struct {
	Date string `json:"date"`
}

// Dropdown is the payload for multi-select dropdown columns.
type Dropdown struct {
	Labels []string `json:"labels"`
}

// Checkbox is the payload for checkbox columns.
type Checkbox struct {
	Checked bool `json:"checked"`
}

// ColumnDescriptor describes one column of the remote board.
type ColumnDescriptor struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}
