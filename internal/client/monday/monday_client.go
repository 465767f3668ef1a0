// Package monday wraps the remote board's GraphQL endpoint. Every operation
// is one synchronous round trip with no retry; remote-reported errors surface
// as *APIError, transport failures as wrapped errors.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/buildcore/vendor-intake/internal/mapping"
	"github.com/buildcore/vendor-intake/internal/models"
)

// duplicateScanLimit caps the full-board scan used for duplicate lookup. The
// board API has no faceted query by tax id, so lookup is a linear scan over
// the first page of items; at this tool's scale one page covers the board.
const duplicateScanLimit = 500

const apiVersion = "2024-01"

// APIError is an error the board reported in a GraphQL response.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "monday: " + e.Message
}

// IsRateLimited reports whether err is a remote-reported rate-limit rejection.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && strings.Contains(strings.ToLower(apiErr.Message), "rate limit")
}

type MondayClient struct {
	apiURL     string
	apiKey     string
	boardID    string
	httpClient *http.Client
}

func NewMondayClient(apiURL, apiKey, boardID string) *MondayClient {
	return &MondayClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		boardID:    boardID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// TestConnection verifies the API key and board id by fetching the
// authenticated user plus the board and its columns.
func (c *MondayClient) TestConnection(ctx context.Context) (*ConnectionInfo, error) {
	query := fmt.Sprintf(`query {
		me { name email }
		boards(ids: [%s]) {
			id
			name
			columns { id title type }
		}
	}`, c.boardID)

	var data struct {
		Me     User        `json:"me"`
		Boards []BoardInfo `json:"boards"`
	}
	if err := c.execute(ctx, query, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Boards) == 0 {
		return nil, &APIError{Message: fmt.Sprintf("board %s not found", c.boardID)}
	}
	return &ConnectionInfo{User: data.Me, Board: data.Boards[0]}, nil
}

// FindVendorByTaxID scans the board for an item whose tax-id column matches
// taxID by exact trimmed equality. Returns nil when no item matches.
func (c *MondayClient) FindVendorByTaxID(ctx context.Context, taxID string) (*models.VendorItem, error) {
	taxID = strings.TrimSpace(taxID)
	if taxID == "" {
		return nil, nil
	}

	taxColumn := mapping.ColumnID("taxId")
	query := fmt.Sprintf(`query {
		boards(ids: [%s]) {
			items_page(limit: %d) {
				items {
					id
					name
					column_values(ids: [%q]) { id text }
				}
			}
		}
	}`, c.boardID, duplicateScanLimit, taxColumn)

	var data itemsPageData
	if err := c.execute(ctx, query, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Boards) == 0 {
		return nil, nil
	}

	for _, item := range data.Boards[0].ItemsPage.Items {
		for _, col := range item.ColumnValues {
			if col.ID == taxColumn && strings.TrimSpace(col.Text) == taxID {
				return &models.VendorItem{ID: item.ID, Name: item.Name}, nil
			}
		}
	}
	return nil, nil
}

// CreateVendorItem creates a board item named for the vendor, carrying the
// incomplete marker when the submission did not pass all core checks.
func (c *MondayClient) CreateVendorItem(ctx context.Context, vendorName string, columns models.ColumnValues, complete bool) (*models.VendorItem, error) {
	encoded, err := json.Marshal(columns)
	if err != nil {
		return nil, fmt.Errorf("encode column values: %w", err)
	}

	mutation := `mutation CreateVendorItem($boardId: ID!, $itemName: String!, $columnValues: JSON!) {
		create_item(board_id: $boardId, item_name: $itemName, column_values: $columnValues) {
			id
			name
		}
	}`
	variables := map[string]any{
		"boardId":      c.boardID,
		"itemName":     models.DisplayName(vendorName, complete),
		"columnValues": string(encoded),
	}

	var data struct {
		CreateItem models.VendorItem `json:"create_item"`
	}
	if err := c.execute(ctx, mutation, variables, &data); err != nil {
		return nil, err
	}
	return &data.CreateItem, nil
}

// UpdateVendorItem overwrites the given columns on an existing item.
func (c *MondayClient) UpdateVendorItem(ctx context.Context, itemID string, columns models.ColumnValues) error {
	encoded, err := json.Marshal(columns)
	if err != nil {
		return fmt.Errorf("encode column values: %w", err)
	}

	mutation := `mutation UpdateVendorItem($boardId: ID!, $itemId: ID!, $columnValues: JSON!) {
		change_multiple_column_values(board_id: $boardId, item_id: $itemId, column_values: $columnValues) {
			id
		}
	}`
	variables := map[string]any{
		"boardId":      c.boardID,
		"itemId":       itemID,
		"columnValues": string(encoded),
	}

	return c.execute(ctx, mutation, variables, nil)
}

// RenameItem sets the item's display name, used to add or clear the
// incomplete marker on resubmission.
func (c *MondayClient) RenameItem(ctx context.Context, itemID, newName string) error {
	mutation := `mutation RenameItem($boardId: ID!, $itemId: ID!, $value: String!) {
		change_simple_column_value(board_id: $boardId, item_id: $itemId, column_id: "name", value: $value) {
			id
		}
	}`
	variables := map[string]any{
		"boardId": c.boardID,
		"itemId":  itemID,
		"value":   newName,
	}

	return c.execute(ctx, mutation, variables, nil)
}

// AddFileLinks writes the archived-file links into the file-links column as
// clickable HTML anchors, one per line. Failed uploads are skipped; if no
// upload succeeded this is a no-op.
func (c *MondayClient) AddFileLinks(ctx context.Context, itemID string, results []models.UploadResult) error {
	var links []string
	for _, r := range results {
		if !r.Success || r.Link == "" {
			continue
		}
		links = append(links, fmt.Sprintf(`<a href=%q target="_blank">%s</a>`, r.Link, r.FileName))
	}
	if len(links) == 0 {
		return nil
	}

	return c.UpdateVendorItem(ctx, itemID, models.ColumnValues{
		mapping.ColumnFileLinks: strings.Join(links, "<br>"),
	})
}

// ListColumns returns the board's column descriptors.
func (c *MondayClient) ListColumns(ctx context.Context) ([]models.ColumnDescriptor, error) {
	query := fmt.Sprintf(`query {
		boards(ids: [%s]) {
			columns { id title type }
		}
	}`, c.boardID)

	var data struct {
		Boards []struct {
			Columns []models.ColumnDescriptor `json:"columns"`
		} `json:"boards"`
	}
	if err := c.execute(ctx, query, nil, &data); err != nil {
		return nil, err
	}
	if len(data.Boards) == 0 {
		return nil, &APIError{Message: fmt.Sprintf("board %s not found", c.boardID)}
	}
	return data.Boards[0].Columns, nil
}

// execute posts one GraphQL document and decodes the data envelope into out.
func (c *MondayClient) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("monday request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("monday API status %d", resp.StatusCode)
	}
	if len(envelope.Errors) > 0 {
		return &APIError{Message: envelope.Errors[0].Message}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("monday API status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
