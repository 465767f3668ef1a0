// Package service orchestrates one vendor application end to end: validate,
// duplicate lookup, transform, create-or-update on the board, archive
// attachments, link them back, notify.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildcore/vendor-intake/internal/client"
	"github.com/buildcore/vendor-intake/internal/mapping"
	"github.com/buildcore/vendor-intake/internal/models"
	"github.com/buildcore/vendor-intake/internal/validation"
)

// Result is the successful outcome of one submission.
type Result struct {
	ItemID     string
	VendorName string
	Updated    bool
	Message    string
}

const submittedMessage = "Your vendor application has been successfully submitted!"

type VendorService struct {
	board       client.BoardClient
	archiver    client.FileArchiver
	notifier    client.Notifier
	transformer *mapping.Transformer
	validator   *validation.Validator

	duplicateCheckEnabled bool
	notificationsEnabled  bool
}

// NewVendorService wires the orchestration. archiver and notifier may be nil
// when the corresponding integrations are not configured.
func NewVendorService(
	board client.BoardClient,
	archiver client.FileArchiver,
	notifier client.Notifier,
	transformer *mapping.Transformer,
	validator *validation.Validator,
	duplicateCheckEnabled bool,
	notificationsEnabled bool,
) *VendorService {
	return &VendorService{
		board:                 board,
		archiver:              archiver,
		notifier:              notifier,
		transformer:           transformer,
		validator:             validator,
		duplicateCheckEnabled: duplicateCheckEnabled,
		notificationsEnabled:  notificationsEnabled,
	}
}

// Submit processes one vendor application. Validation failures and duplicate
// conflicts short-circuit before any board mutation; board-write failures
// abort; archival and notification failures never do.
func (s *VendorService) Submit(ctx context.Context, sub models.Submission, files []models.UploadedFile) (*Result, error) {
	if errs := s.validator.Validate(sub); len(errs) > 0 {
		return nil, &ValidationFailedError{Errors: errs}
	}

	vendorName := sub.Get("vendorName")

	existing, err := s.board.FindVendorByTaxID(ctx, sub.Get("taxId"))
	if err != nil {
		// A broken duplicate check must not block intake.
		slog.Warn("duplicate lookup failed, proceeding as new vendor", "error", err)
		existing = nil
	}

	columns := s.transformer.Transform(sub)

	// Validation gates submission, so this application is complete; on the
	// update path the rename clears any stale incomplete marker.
	const complete = true

	var item *models.VendorItem
	updated := false

	if existing != nil {
		if s.duplicateCheckEnabled {
			slog.Info("duplicate vendor rejected", "item_id", existing.ID, "vendor", vendorName)
			return nil, ErrDuplicateVendor
		}

		if err := s.board.UpdateVendorItem(ctx, existing.ID, columns); err != nil {
			return nil, fmt.Errorf("update vendor item: %w", err)
		}
		displayName := models.DisplayName(vendorName, complete)
		if err := s.board.RenameItem(ctx, existing.ID, displayName); err != nil {
			return nil, fmt.Errorf("rename vendor item: %w", err)
		}
		item = &models.VendorItem{ID: existing.ID, Name: displayName}
		updated = true
		slog.Info("vendor item updated", "item_id", item.ID, "vendor", vendorName)
	} else {
		item, err = s.board.CreateVendorItem(ctx, vendorName, columns, complete)
		if err != nil {
			return nil, fmt.Errorf("create vendor item: %w", err)
		}
		slog.Info("vendor item created", "item_id", item.ID, "vendor", vendorName)
	}

	if len(files) > 0 && s.archiver != nil {
		results := s.archiver.Archive(ctx, vendorName, files)
		if err := s.board.AddFileLinks(ctx, item.ID, results); err != nil {
			// Links are best-effort; the files are archived regardless.
			slog.Error("attach file links failed", "item_id", item.ID, "error", err)
		}
	}

	if s.notificationsEnabled && s.notifier != nil {
		if err := s.notifier.SendConfirmation(ctx, sub.Get("mainContactEmail"), vendorName); err != nil {
			slog.Error("confirmation email failed", "error", err)
		}
		if err := s.notifier.SendTeamNotification(ctx, sub, item.ID); err != nil {
			slog.Error("team notification failed", "error", err)
		}
	}

	return &Result{
		ItemID:     item.ID,
		VendorName: vendorName,
		Updated:    updated,
		Message:    submittedMessage,
	}, nil
}
