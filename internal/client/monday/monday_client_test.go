package monday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildcore/vendor-intake/internal/mapping"
	"github.com/buildcore/vendor-intake/internal/models"
)

// capturedRequest records the GraphQL document a test server received.
type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newTestClient starts a server that replies with the given body and returns a
// client pointed at it, plus a pointer to the last captured request.
func newTestClient(t *testing.T, status int, responseBody string) (*MondayClient, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("API-Version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		w.WriteHeader(status)
		fmt.Fprint(w, responseBody)
	}))
	t.Cleanup(server.Close)
	return NewMondayClient(server.URL, "test-api-key", "123456"), captured
}

func TestTestConnection(t *testing.T) {
	body := `{"data": {
		"me": {"name": "Ops Bot", "email": "ops@example.com"},
		"boards": [{"id": "123456", "name": "Vendors", "columns": [
			{"id": "text_mkmbs3r8", "title": "Main Contact", "type": "text"}
		]}]
	}}`
	client, captured := newTestClient(t, http.StatusOK, body)

	info, err := client.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ops Bot", info.User.Name)
	assert.Equal(t, "Vendors", info.Board.Name)
	require.Len(t, info.Board.Columns, 1)
	assert.Contains(t, captured.Query, "boards(ids: [123456])")
}

func TestTestConnection_BoardNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"data": {"me": {}, "boards": []}}`)

	_, err := client.TestConnection(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "board 123456 not found")
}

func TestFindVendorByTaxID(t *testing.T) {
	taxColumn := mapping.ColumnID("taxId")
	body := fmt.Sprintf(`{"data": {"boards": [{"items_page": {"items": [
		{"id": "11", "name": "Other Co", "column_values": [{"id": %q, "text": "98-7654321"}]},
		{"id": "22", "name": "Acme Construction", "column_values": [{"id": %q, "text": " 12-3456789 "}]}
	]}}]}}`, taxColumn, taxColumn)
	client, captured := newTestClient(t, http.StatusOK, body)

	item, err := client.FindVendorByTaxID(context.Background(), "12-3456789")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "22", item.ID)
	assert.Equal(t, "Acme Construction", item.Name)
	assert.Contains(t, captured.Query, fmt.Sprintf("limit: %d", duplicateScanLimit))
}

func TestFindVendorByTaxID_NoMatchReturnsNil(t *testing.T) {
	body := `{"data": {"boards": [{"items_page": {"items": []}}]}}`
	client, _ := newTestClient(t, http.StatusOK, body)

	item, err := client.FindVendorByTaxID(context.Background(), "12-3456789")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestFindVendorByTaxID_BlankTaxIDSkipsLookup(t *testing.T) {
	client := NewMondayClient("http://127.0.0.1:1", "key", "123456")

	item, err := client.FindVendorByTaxID(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCreateVendorItem(t *testing.T) {
	body := `{"data": {"create_item": {"id": "42", "name": "Acme Construction"}}}`
	client, captured := newTestClient(t, http.StatusOK, body)

	columns := models.ColumnValues{
		mapping.ColumnStatus: models.Label{Label: mapping.DefaultStatus},
	}
	item, err := client.CreateVendorItem(context.Background(), "Acme Construction", columns, true)
	require.NoError(t, err)
	assert.Equal(t, "42", item.ID)

	assert.Equal(t, "123456", captured.Variables["boardId"])
	assert.Equal(t, "Acme Construction", captured.Variables["itemName"])

	// Column values travel as a JSON string inside the variables.
	encoded, ok := captured.Variables["columnValues"].(string)
	require.True(t, ok)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	assert.Contains(t, decoded, mapping.ColumnStatus)
}

func TestCreateVendorItem_IncompleteGetsMarkedName(t *testing.T) {
	body := `{"data": {"create_item": {"id": "43", "name": "(Incomplete) Acme Construction"}}}`
	client, captured := newTestClient(t, http.StatusOK, body)

	_, err := client.CreateVendorItem(context.Background(), "Acme Construction", models.ColumnValues{}, false)
	require.NoError(t, err)
	assert.Equal(t, "(Incomplete) Acme Construction", captured.Variables["itemName"])
}

func TestUpdateVendorItem(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"data": {"change_multiple_column_values": {"id": "42"}}}`)

	err := client.UpdateVendorItem(context.Background(), "42", models.ColumnValues{
		mapping.ColumnNotes: "resubmitted",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", captured.Variables["itemId"])
	assert.Contains(t, captured.Query, "change_multiple_column_values")
}

func TestRenameItem(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"data": {"change_simple_column_value": {"id": "42"}}}`)

	err := client.RenameItem(context.Background(), "42", "Acme Construction")
	require.NoError(t, err)
	assert.Equal(t, "Acme Construction", captured.Variables["value"])
	assert.Contains(t, captured.Query, `column_id: "name"`)
}

func TestAddFileLinks(t *testing.T) {
	client, captured := newTestClient(t, http.StatusOK, `{"data": {"change_multiple_column_values": {"id": "42"}}}`)

	results := []models.UploadResult{
		{Field: "w9Form", FileName: "w9.pdf", Link: "https://bucket.s3.amazonaws.com/w9.pdf", Success: true},
		{Field: "glInsurance", FileName: "gl.pdf", Error: "upload failed", Success: false},
		{Field: "wcInsurance", FileName: "wc.pdf", Link: "https://bucket.s3.amazonaws.com/wc.pdf", Success: true},
	}
	err := client.AddFileLinks(context.Background(), "42", results)
	require.NoError(t, err)

	encoded, ok := captured.Variables["columnValues"].(string)
	require.True(t, ok)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(encoded), &decoded))
	links := decoded[mapping.ColumnFileLinks]
	assert.Contains(t, links, `<a href="https://bucket.s3.amazonaws.com/w9.pdf" target="_blank">w9.pdf</a>`)
	assert.Contains(t, links, "<br>")
	assert.NotContains(t, links, "gl.pdf", "failed uploads must be skipped")
}

func TestAddFileLinks_NoSuccessesIsNoOp(t *testing.T) {
	// Unreachable endpoint: a request would fail the test.
	client := NewMondayClient("http://127.0.0.1:1", "key", "123456")

	err := client.AddFileLinks(context.Background(), "42", []models.UploadResult{
		{Field: "w9Form", Success: false, Error: "upload failed"},
	})
	require.NoError(t, err)
}

func TestExecute_GraphQLErrorSurfacesAsAPIError(t *testing.T) {
	body := `{"errors": [{"message": "Rate limit exceeded, retry later"}]}`
	client, _ := newTestClient(t, http.StatusOK, body)

	_, err := client.FindVendorByTaxID(context.Background(), "12-3456789")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Rate limit exceeded, retry later", apiErr.Message)
	assert.True(t, IsRateLimited(err))
}

func TestExecute_NonJSONErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadGateway, "upstream unavailable")

	_, err := client.FindVendorByTaxID(context.Background(), "12-3456789")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monday API status 502")
}

func TestListColumns(t *testing.T) {
	body := `{"data": {"boards": [{"columns": [
		{"id": "text_mkmbs3r8", "title": "Main Contact", "type": "text"},
		{"id": "notes_mknbkfs0", "title": "Notes", "type": "long_text"}
	]}]}}`
	client, _ := newTestClient(t, http.StatusOK, body)

	columns, err := client.ListColumns(context.Background())
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "text_mkmbs3r8", columns[0].ID)
	assert.Equal(t, "long_text", columns[1].Type)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&APIError{Message: "Rate Limit exceeded"}))
	assert.False(t, IsRateLimited(&APIError{Message: "board not found"}))
	assert.False(t, IsRateLimited(errors.New("rate limit")))
	assert.False(t, IsRateLimited(nil))
}
