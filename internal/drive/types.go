package drive

import "context"

// ProviderFile is the subset of Drive file metadata the front end consumes.
// ModifiedTime and Size stay in their wire form (RFC 3339 string, decimal
// string); interpretation belongs to the endpoint, not the adapter.
type ProviderFile struct {
	ID             string
	Name           string
	ModifiedTime   string
	Size           string
	WebViewLink    string
	WebContentLink string
}

// Adapter is the thin pass-through to the storage provider. Both operations
// act with the caller's own access token; the adapter holds no credentials.
type Adapter interface {
	// ListPDFs returns the non-trashed PDF files directly under folderID,
	// ordered by name ascending. Only the first page (100 files) is
	// returned; larger folders are silently truncated at that bound.
	ListPDFs(ctx context.Context, accessToken, folderID string) ([]ProviderFile, error)

	// GetBytes fetches the raw content of a single file.
	GetBytes(ctx context.Context, accessToken, fileID string) ([]byte, error)
}
