package assistant

import (
	"context"
	"fmt"
)

type createAssistantRequest struct {
	Model        string          `json:"model"`
	Instructions string          `json:"instructions"`
	Tools        []assistantTool `json:"tools"`
}

type assistantTool struct {
	Type string `json:"type"`
}

type updateAssistantRequest struct {
	ToolResources toolResources `json:"tool_resources"`
}

type toolResources struct {
	FileSearch fileSearchResources `json:"file_search"`
}

type fileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids"`
}

type objectResponse struct {
	ID string `json:"id"`
}

// CreateAssistant creates a remote assistant with the file-search tool enabled
// and returns its id.
func (c *Client) CreateAssistant(ctx context.Context, instructions, model string) (string, error) {
	req := createAssistantRequest{
		Model:        model,
		Instructions: instructions,
		Tools:        []assistantTool{{Type: "file_search"}},
	}

	var resp objectResponse
	if err := c.doJSON(ctx, "POST", "/assistants", req, &resp); err != nil {
		return "", fmt.Errorf("create assistant: %w", err)
	}
	return resp.ID, nil
}

// AttachVectorStore scopes the assistant's file-search tool to the given
// vector store.
func (c *Client) AttachVectorStore(ctx context.Context, assistantID, vectorStoreID string) error {
	req := updateAssistantRequest{
		ToolResources: toolResources{
			FileSearch: fileSearchResources{
				VectorStoreIDs: []string{vectorStoreID},
			},
		},
	}

	if err := c.doJSON(ctx, "POST", "/assistants/"+assistantID, req, nil); err != nil {
		return fmt.Errorf("attach vector store: %w", err)
	}
	return nil
}
