// Package client declares the outbound-boundary interfaces the service layer
// consumes, so orchestration is testable without the real board or store.
package client

import (
	"context"

	"github.com/buildcore/vendor-intake/internal/models"
)

// BoardClient is the remote board boundary: duplicate lookup, item mutation
// and link-back. Implemented by monday.MondayClient.
type BoardClient interface {
	FindVendorByTaxID(ctx context.Context, taxID string) (*models.VendorItem, error)
	CreateVendorItem(ctx context.Context, vendorName string, columns models.ColumnValues, complete bool) (*models.VendorItem, error)
	UpdateVendorItem(ctx context.Context, itemID string, columns models.ColumnValues) error
	RenameItem(ctx context.Context, itemID, newName string) error
	AddFileLinks(ctx context.Context, itemID string, results []models.UploadResult) error
}

// FileArchiver stores submission attachments and reports per-file outcomes;
// partial failure is expected and never aborts the batch.
type FileArchiver interface {
	Archive(ctx context.Context, vendorName string, files []models.UploadedFile) []models.UploadResult
}

// Notifier sends the post-submission emails. The current implementation is a
// logging stub.
type Notifier interface {
	SendConfirmation(ctx context.Context, toEmail, vendorName string) error
	SendTeamNotification(ctx context.Context, sub models.Submission, itemID string) error
}
