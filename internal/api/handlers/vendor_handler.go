package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/buildcore/vendor-intake/internal/api/middleware"
	"github.com/buildcore/vendor-intake/internal/client/monday"
	"github.com/buildcore/vendor-intake/internal/config"
	"github.com/buildcore/vendor-intake/internal/models"
	"github.com/buildcore/vendor-intake/internal/service"
)

// fileFields are the attachment slots the form may carry, one file each.
var fileFields = []string{"w9Form", "glInsurance", "wcInsurance", "businessLicense"}

const rateLimitedMessage = "Too many requests. Please wait a few minutes and try again."
const internalErrorMessage = "An error occurred while processing your application. Please try again."

// submitter is the orchestration boundary the handler drives.
type submitter interface {
	Submit(ctx context.Context, sub models.Submission, files []models.UploadedFile) (*service.Result, error)
}

type submissionResponse struct {
	Success    bool                     `json:"success"`
	Message    string                   `json:"message,omitempty"`
	ItemID     string                   `json:"itemId,omitempty"`
	VendorName string                   `json:"vendorName,omitempty"`
	Error      string                   `json:"error,omitempty"`
	Errors     []models.ValidationError `json:"errors,omitempty"`
	Details    string                   `json:"details,omitempty"`
}

type VendorHandler struct {
	svc submitter
	cfg config.Config
}

func NewVendorHandler(svc submitter, cfg config.Config) *VendorHandler {
	return &VendorHandler{svc: svc, cfg: cfg}
}

// Submit handles POST /api/vendor-application.
func (h *VendorHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes())

	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes()); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(w, http.StatusBadRequest, fmt.Sprintf("File too large. Maximum size is %dMB", h.cfg.MaxUploadMB), "")
			return
		}
		h.fail(w, http.StatusBadRequest, "Request must be multipart/form-data", "")
		return
	}

	sub := models.Submission(r.MultipartForm.Value)
	slog.Info("received vendor application",
		"vendor", sub.Get("vendorName"),
		"email", sub.Get("mainContactEmail"),
	)

	files, err := h.readFiles(r)
	if err != nil {
		h.fail(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	result, err := h.svc.Submit(r.Context(), sub, files)
	if err != nil {
		h.writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, submissionResponse{
		Success:    true,
		Message:    result.Message,
		ItemID:     result.ItemID,
		VendorName: result.VendorName,
	})
}

// readFiles pulls the known attachment slots out of the parsed form, one
// file per slot, enforcing the extension allow-list.
func (h *VendorHandler) readFiles(r *http.Request) ([]models.UploadedFile, error) {
	var files []models.UploadedFile

	for _, field := range fileFields {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
		if !h.cfg.AllowsExtension(ext) {
			return nil, fmt.Errorf("File type .%s not allowed. Allowed types: %s",
				ext, strings.Join(h.cfg.AllowedFileExts, ", "))
		}

		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("could not read uploaded file %s", header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not read uploaded file %s", header.Filename)
		}

		files = append(files, models.UploadedFile{
			Field:       field,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Data:        data,
		})
	}

	return files, nil
}

// writeError maps service failures onto the HTTP error taxonomy.
func (h *VendorHandler) writeError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationFailedError

	switch {
	case errors.As(err, &validationErr):
		middleware.JSONResponse(w, http.StatusBadRequest, submissionResponse{
			Success: false,
			Errors:  validationErr.Errors,
		})
	case errors.Is(err, service.ErrDuplicateVendor):
		h.fail(w, http.StatusConflict, service.ErrDuplicateVendor.Error(), "")
	case monday.IsRateLimited(err):
		h.fail(w, http.StatusTooManyRequests, rateLimitedMessage, "")
	default:
		slog.Error("vendor application failed", "error", err)
		details := ""
		if h.cfg.IsDevelopment() {
			details = err.Error()
		}
		h.fail(w, http.StatusInternalServerError, internalErrorMessage, details)
	}
}

func (h *VendorHandler) fail(w http.ResponseWriter, status int, message, details string) {
	middleware.JSONResponse(w, status, submissionResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}
