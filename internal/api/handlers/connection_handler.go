package handlers

import (
	"context"
	"net/http"

	"github.com/buildcore/vendor-intake/internal/api/middleware"
	"github.com/buildcore/vendor-intake/internal/client/monday"
)

// connectionTester is the diagnostics slice of the board client.
type connectionTester interface {
	TestConnection(ctx context.Context) (*monday.ConnectionInfo, error)
}

type ConnectionHandler struct {
	board connectionTester
}

func NewConnectionHandler(board connectionTester) *ConnectionHandler {
	return &ConnectionHandler{board: board}
}

// Test handles GET /api/test-connection: proxies a connectivity check
// against the remote board.
func (h *ConnectionHandler) Test(w http.ResponseWriter, r *http.Request) {
	info, err := h.board.TestConnection(r.Context())
	if err != nil {
		middleware.JSONResponse(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
			"details": "Check MONDAY_API_KEY and MONDAY_BOARD_ID",
		})
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    info,
	})
}
