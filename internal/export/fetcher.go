package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"content-portal/pkg/blob"
)

// BlobImageFetcher fetches image bytes over HTTP, re-resolving object-storage
// references through the blob store first so expired stored URLs still work.
type BlobImageFetcher struct {
	store  *blob.Store
	client *http.Client
}

func NewBlobImageFetcher(store *blob.Store, timeout time.Duration) *BlobImageFetcher {
	return &BlobImageFetcher{
		store:  store,
		client: &http.Client{Timeout: timeout},
	}
}

func (f *BlobImageFetcher) FetchImage(ctx context.Context, ref string) ([]byte, string, error) {
	fetchURL := ref

	if blob.IsStorageURL(ref) {
		key, err := blob.ObjectKeyFromURL(ref)
		if err != nil {
			return nil, "", err
		}
		fetchURL, err = f.store.FreshSignedURL(key)
		if err != nil {
			return nil, "", fmt.Errorf("failed to re-sign storage URL: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
