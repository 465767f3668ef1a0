package models

// UploadedFile is one attachment read out of the multipart form.
type UploadedFile struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// UploadResult records the outcome of archiving one attachment. Partial
// failure is expected: some files in a submission may archive while others
// fail, and the submission proceeds either way.
type UploadResult struct {
	Field       string `json:"field"`
	DisplayName string `json:"displayName"`
	FileName    string `json:"fileName"`
	Link        string `json:"link,omitempty"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}
