package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrIngestionFailed reports that a vector store file batch ended in a
	// terminal state other than completed.
	ErrIngestionFailed = errors.New("vector store ingestion failed")

	// ErrIngestionTimedOut reports that a file batch was still in flight when
	// the client's poll timeout elapsed.
	ErrIngestionTimedOut = errors.New("vector store ingestion timed out")
)

type createVectorStoreRequest struct {
	Name         string       `json:"name"`
	ExpiresAfter expiresAfter `json:"expires_after"`
}

type expiresAfter struct {
	Anchor string `json:"anchor"`
	Days   int    `json:"days"`
}

type vectorStoreListResponse struct {
	Data []VectorStore `json:"data"`
}

type vectorStoreFileListResponse struct {
	Data []objectResponse `json:"data"`
}

type createFileBatchRequest struct {
	FileIDs []string `json:"file_ids"`
}

type fileBatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateVectorStore creates a managed document index that the provider
// expires the given number of days after its last activity.
func (c *Client) CreateVectorStore(ctx context.Context, name string, expiryDays int) (string, error) {
	req := createVectorStoreRequest{
		Name: name,
		ExpiresAfter: expiresAfter{
			Anchor: "last_active_at",
			Days:   expiryDays,
		},
	}

	var resp objectResponse
	if err := c.doJSON(ctx, "POST", "/vector_stores", req, &resp); err != nil {
		return "", fmt.Errorf("create vector store: %w", err)
	}
	return resp.ID, nil
}

// ListVectorStores returns every vector store visible to the credential,
// not only the ones this process created.
func (c *Client) ListVectorStores(ctx context.Context) ([]VectorStore, error) {
	var resp vectorStoreListResponse
	if err := c.doJSON(ctx, "GET", "/vector_stores", nil, &resp); err != nil {
		return nil, fmt.Errorf("list vector stores: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) DeleteVectorStore(ctx context.Context, vectorStoreID string) error {
	if err := c.doJSON(ctx, "DELETE", "/vector_stores/"+vectorStoreID, nil, nil); err != nil {
		return fmt.Errorf("delete vector store: %w", err)
	}
	return nil
}

// ListVectorStoreFiles returns the file ids associated with the store.
func (c *Client) ListVectorStoreFiles(ctx context.Context, vectorStoreID string) ([]string, error) {
	var resp vectorStoreFileListResponse
	if err := c.doJSON(ctx, "GET", "/vector_stores/"+vectorStoreID+"/files", nil, &resp); err != nil {
		return nil, fmt.Errorf("list vector store files: %w", err)
	}

	ids := make([]string, 0, len(resp.Data))
	for _, file := range resp.Data {
		ids = append(ids, file.ID)
	}
	return ids, nil
}

// AddFileToVectorStore associates an uploaded file with the store via a file
// batch and polls until remote ingestion reaches a terminal state, bounded by
// the client's poll policy.
func (c *Client) AddFileToVectorStore(ctx context.Context, vectorStoreID, fileID string) error {
	req := createFileBatchRequest{FileIDs: []string{fileID}}

	var batch fileBatchResponse
	path := "/vector_stores/" + vectorStoreID + "/file_batches"
	if err := c.doJSON(ctx, "POST", path, req, &batch); err != nil {
		return fmt.Errorf("create file batch: %w", err)
	}

	deadline := time.Now().Add(c.PollTimeout)
	for {
		switch batch.Status {
		case "completed":
			return nil
		case "failed", "cancelled":
			return fmt.Errorf("%w: batch %s status %s", ErrIngestionFailed, batch.ID, batch.Status)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: batch %s still %s after %s", ErrIngestionTimedOut, batch.ID, batch.Status, c.PollTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.PollInterval):
		}

		if err := c.doJSON(ctx, "GET", path+"/"+batch.ID, nil, &batch); err != nil {
			return fmt.Errorf("poll file batch: %w", err)
		}
	}
}
