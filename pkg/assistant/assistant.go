package assistant

import "context"

// VectorStore identifies one remote managed document index.
type VectorStore struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// API is the surface of the hosted assistant service this application
// consumes. Creation, polling and deletion semantics are whatever the provider
// defines; callers only sequence these operations.
type API interface {
	// Assistants
	CreateAssistant(ctx context.Context, instructions, model string) (string, error)
	AttachVectorStore(ctx context.Context, assistantID, vectorStoreID string) error

	// Threads, runs, messages
	CreateThread(ctx context.Context) (string, error)
	CreateRunAndPoll(ctx context.Context, threadID, assistantID, instructions string) error
	LatestAssistantText(ctx context.Context, threadID string) (string, error)

	// Vector stores and files
	CreateVectorStore(ctx context.Context, name string, expiryDays int) (string, error)
	ListVectorStores(ctx context.Context) ([]VectorStore, error)
	DeleteVectorStore(ctx context.Context, vectorStoreID string) error
	ListVectorStoreFiles(ctx context.Context, vectorStoreID string) ([]string, error)
	UploadFile(ctx context.Context, name string, data []byte) (string, error)
	AddFileToVectorStore(ctx context.Context, vectorStoreID, fileID string) error
	DeleteFile(ctx context.Context, fileID string) error
}
