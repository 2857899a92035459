package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadFile pushes raw file bytes to the provider's file storage with the
// assistants purpose and returns the remote file id.
func (c *Client) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("purpose", "assistants"); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upload file: status %d, body: %s", resp.StatusCode, string(raw))
	}

	var out objectResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	return out.ID, nil
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.doJSON(ctx, "DELETE", "/files/"+fileID, nil, nil); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
