// Package drive wraps the Google Drive v3 API. It is a thin adapter with no
// retries and no caching; provider errors propagate to the caller as-is.
package drive

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/oauth2"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	pdfMimeType = "application/pdf"

	// listPageSize caps listings at the first page. There is deliberately no
	// pagination beyond it; folders with more files are truncated.
	listPageSize = 100

	listFields = "files(id, name, modifiedTime, size, webViewLink, webContentLink)"
)

// Client implements Adapter against the real Google Drive API.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) service(ctx context.Context, accessToken string) (*driveapi.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	srv, err := driveapi.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return srv, nil
}

func (c *Client) ListPDFs(ctx context.Context, accessToken, folderID string) ([]ProviderFile, error) {
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	list, err := srv.Files.List().
		Context(ctx).
		Q(pdfQuery(folderID)).
		OrderBy("name").
		PageSize(listPageSize).
		Fields(listFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list files in folder %s: %w", folderID, err)
	}

	files := make([]ProviderFile, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, fromDriveFile(f))
	}
	return files, nil
}

func (c *Client) GetBytes(ctx context.Context, accessToken, fileID string) ([]byte, error) {
	srv, err := c.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}
	return data, nil
}

func pdfQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false", folderID, pdfMimeType)
}

func fromDriveFile(f *driveapi.File) ProviderFile {
	pf := ProviderFile{
		ID:             f.Id,
		Name:           f.Name,
		ModifiedTime:   f.ModifiedTime,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
	}
	// Drive sends size as a decimal string and omits it for some files; keep
	// the wire form so a missing size stays distinguishable from zero.
	if f.Size != 0 {
		pf.Size = strconv.FormatInt(f.Size, 10)
	}
	return pf
}
