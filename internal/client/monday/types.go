package monday

import "github.com/buildcore/vendor-intake/internal/models"

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

// User is the API user the key authenticates as.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// BoardInfo describes the configured board and its columns.
type BoardInfo struct {
	ID      string                    `json:"id"`
	Name    string                    `json:"name"`
	Columns []models.ColumnDescriptor `json:"columns"`
}

// ConnectionInfo is the result of a connection test.
type ConnectionInfo struct {
	User  User      `json:"user"`
	Board BoardInfo `json:"board"`
}

type boardItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ColumnValues []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"column_values"`
}

type itemsPageData struct {
	Boards []struct {
		ItemsPage struct {
			Items []boardItem `json:"items"`
		} `json:"items_page"`
	} `json:"boards"`
}
