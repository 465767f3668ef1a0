package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildcore/vendor-intake/internal/client"
	"github.com/buildcore/vendor-intake/internal/mapping"
	"github.com/buildcore/vendor-intake/internal/models"
	"github.com/buildcore/vendor-intake/internal/validation"
)

// fakeBoard records every call the service makes against the board.
type fakeBoard struct {
	existing  *models.VendorItem
	findErr   error
	createErr error
	updateErr error
	renameErr error
	linksErr  error

	created     bool
	createdName string
	updatedID   string
	renamedTo   string
	linkedID    string
	linked      []models.UploadResult
}

func (b *fakeBoard) FindVendorByTaxID(ctx context.Context, taxID string) (*models.VendorItem, error) {
	return b.existing, b.findErr
}

func (b *fakeBoard) CreateVendorItem(ctx context.Context, vendorName string, columns models.ColumnValues, complete bool) (*models.VendorItem, error) {
	if b.createErr != nil {
		return nil, b.createErr
	}
	b.created = true
	b.createdName = models.DisplayName(vendorName, complete)
	return &models.VendorItem{ID: "100", Name: b.createdName}, nil
}

func (b *fakeBoard) UpdateVendorItem(ctx context.Context, itemID string, columns models.ColumnValues) error {
	b.updatedID = itemID
	return b.updateErr
}

func (b *fakeBoard) RenameItem(ctx context.Context, itemID, newName string) error {
	b.renamedTo = newName
	return b.renameErr
}

func (b *fakeBoard) AddFileLinks(ctx context.Context, itemID string, results []models.UploadResult) error {
	b.linkedID = itemID
	b.linked = results
	return b.linksErr
}

type fakeArchiver struct {
	results []models.UploadResult
	called  bool
}

func (a *fakeArchiver) Archive(ctx context.Context, vendorName string, files []models.UploadedFile) []models.UploadResult {
	a.called = true
	return a.results
}

type fakeNotifier struct {
	confirmations int
	teamNotices   int
	sendErr       error
}

func (n *fakeNotifier) SendConfirmation(ctx context.Context, email, vendorName string) error {
	n.confirmations++
	return n.sendErr
}

func (n *fakeNotifier) SendTeamNotification(ctx context.Context, sub models.Submission, itemID string) error {
	n.teamNotices++
	return n.sendErr
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
}

func validSubmission() models.Submission {
	return models.Submission{
		"vendorName":       {"Acme Construction"},
		"taxId":            {"12-3456789"},
		"mainContactName":  {"Jane Smith"},
		"mainContactEmail": {"jane@acme.com"},
		"mainContactPhone": {"(555) 123-4567"},
		"vendorAddress":    {"123 Main St, Dallas, TX 75201"},
		"primaryMarket":    {"Dallas"},
		"primaryTrade":     {"Plumbing"},
		"numCrews":         {"3"},
		"serviceLine":      {"SFR"},
		"services":         {"Plumbing"},
		"certification":    {"true"},
	}
}

func newService(board *fakeBoard, archiver *fakeArchiver, notifier *fakeNotifier, dupCheck, notify bool) *VendorService {
	transformer := mapping.NewTransformerWithClock(fixedClock())
	validator := validation.NewValidatorWithClock(fixedClock())
	var arch client.FileArchiver
	if archiver != nil {
		arch = archiver
	}
	var note client.Notifier
	if notifier != nil {
		note = notifier
	}
	return NewVendorService(board, arch, note, transformer, validator, dupCheck, notify)
}

func TestSubmit_CreatesNewVendor(t *testing.T) {
	board := &fakeBoard{}
	svc := newService(board, nil, nil, false, false)

	result, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.True(t, board.created)
	assert.Equal(t, "Acme Construction", board.createdName)
	assert.Equal(t, "100", result.ItemID)
	assert.Equal(t, "Acme Construction", result.VendorName)
	assert.False(t, result.Updated)
	assert.Equal(t, submittedMessage, result.Message)
}

func TestSubmit_ValidationFailureShortCircuits(t *testing.T) {
	board := &fakeBoard{}
	svc := newService(board, nil, nil, false, false)

	sub := validSubmission()
	delete(sub, "vendorName")
	delete(sub, "certification")

	_, err := svc.Submit(context.Background(), sub, nil)
	var vErr *ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Errors, 2)
	assert.False(t, board.created, "validation failure must not reach the board")
}

func TestSubmit_DuplicateRejectedWhenCheckEnabled(t *testing.T) {
	board := &fakeBoard{existing: &models.VendorItem{ID: "55", Name: "Acme Construction"}}
	svc := newService(board, nil, nil, true, false)

	_, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.ErrorIs(t, err, ErrDuplicateVendor)
	assert.False(t, board.created)
	assert.Empty(t, board.updatedID)
}

func TestSubmit_DuplicateUpdatedWhenCheckDisabled(t *testing.T) {
	board := &fakeBoard{existing: &models.VendorItem{ID: "55", Name: "(Incomplete) Acme Construction"}}
	svc := newService(board, nil, nil, false, false)

	result, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.Equal(t, "55", board.updatedID)
	assert.Equal(t, "Acme Construction", board.renamedTo, "rename must clear the incomplete marker")
	assert.True(t, result.Updated)
	assert.Equal(t, "55", result.ItemID)
	assert.False(t, board.created)
}

func TestSubmit_LookupFailureFallsBackToCreate(t *testing.T) {
	board := &fakeBoard{findErr: errors.New("board unreachable")}
	svc := newService(board, nil, nil, true, false)

	result, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.True(t, board.created)
	assert.False(t, result.Updated)
}

func TestSubmit_BoardWriteFailureAborts(t *testing.T) {
	board := &fakeBoard{createErr: errors.New("mutation failed")}
	svc := newService(board, nil, nil, false, false)

	_, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create vendor item")
}

func TestSubmit_RenameFailureAbortsUpdate(t *testing.T) {
	board := &fakeBoard{
		existing:  &models.VendorItem{ID: "55"},
		renameErr: errors.New("mutation failed"),
	}
	svc := newService(board, nil, nil, false, false)

	_, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename vendor item")
}

func TestSubmit_ArchivesFilesAndLinksBack(t *testing.T) {
	board := &fakeBoard{}
	archiver := &fakeArchiver{results: []models.UploadResult{
		{Field: "w9Form", FileName: "w9.pdf", Link: "https://bucket/w9.pdf", Success: true},
		{Field: "glInsurance", FileName: "gl.pdf", Error: "network timeout", Success: false},
	}}
	svc := newService(board, archiver, nil, false, false)

	files := []models.UploadedFile{{Field: "w9Form", Filename: "w9.pdf", Data: []byte("pdf")}}
	_, err := svc.Submit(context.Background(), validSubmission(), files)
	require.NoError(t, err)
	assert.True(t, archiver.called)
	assert.Equal(t, "100", board.linkedID)
	assert.Len(t, board.linked, 2, "partial archive results still reach the board")
}

func TestSubmit_LinkFailureDoesNotFailSubmission(t *testing.T) {
	board := &fakeBoard{linksErr: errors.New("column rejected")}
	archiver := &fakeArchiver{results: []models.UploadResult{
		{Field: "w9Form", FileName: "w9.pdf", Link: "https://bucket/w9.pdf", Success: true},
	}}
	svc := newService(board, archiver, nil, false, false)

	files := []models.UploadedFile{{Field: "w9Form", Filename: "w9.pdf", Data: []byte("pdf")}}
	result, err := svc.Submit(context.Background(), validSubmission(), files)
	require.NoError(t, err)
	assert.Equal(t, "100", result.ItemID)
}

func TestSubmit_NoFilesSkipsArchiver(t *testing.T) {
	board := &fakeBoard{}
	archiver := &fakeArchiver{}
	svc := newService(board, archiver, nil, false, false)

	_, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.False(t, archiver.called)
	assert.Empty(t, board.linkedID)
}

func TestSubmit_NotificationsSentWhenEnabled(t *testing.T) {
	board := &fakeBoard{}
	notifier := &fakeNotifier{}
	svc := newService(board, nil, notifier, false, true)

	_, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.confirmations)
	assert.Equal(t, 1, notifier.teamNotices)
}

func TestSubmit_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	board := &fakeBoard{}
	notifier := &fakeNotifier{sendErr: errors.New("smtp down")}
	svc := newService(board, nil, notifier, false, true)

	result, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.Equal(t, "100", result.ItemID)
}

func TestSubmit_NotificationsSkippedWhenDisabled(t *testing.T) {
	board := &fakeBoard{}
	notifier := &fakeNotifier{}
	svc := newService(board, nil, notifier, false, false)

	_, err := svc.Submit(context.Background(), validSubmission(), nil)
	require.NoError(t, err)
	assert.Zero(t, notifier.confirmations)
	assert.Zero(t, notifier.teamNotices)
}
