package ports

import "context"

// UploadResult is what the hosted media service returns for a stored asset.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// MediaStore abstracts the hosted media service (upload and destroy of
// image assets). Data is a base64 data URI as produced by the upload
// endpoints and the front-end editor.
type MediaStore interface {
	Upload(ctx context.Context, data, folder string) (UploadResult, error)
	// Destroy removes the asset addressed by its hosted URL.
	Destroy(ctx context.Context, url string) error
	// Hosted reports whether the URL points at an asset this store manages.
	// Placeholder assets and foreign URLs are never destroyed.
	Hosted(url string) bool
}

// MediaCleaner accepts best-effort deletion work. Enqueue never blocks and
// never fails the caller; delivery failures are logged and counted by the
// implementation.
type MediaCleaner interface {
	Enqueue(url string)
}

// Mailer sends the two transactional messages the platform needs.
type Mailer interface {
	SendActivationCode(ctx context.Context, email, code string) error
	SendNewPassword(ctx context.Context, email, password string) error
}
