package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"knowledge-chatbot-be/internal/config"
	"knowledge-chatbot-be/internal/repository/memory"
	"knowledge-chatbot-be/pkg/assistant"
	"knowledge-chatbot-be/pkg/events"
	"knowledge-chatbot-be/pkg/storage"
)

// fakeAPI records the calls the services make against the remote assistant
// service and lets tests inject failures and canned replies. Safe for
// concurrent use so tests can hammer one session from several goroutines.
type fakeAPI struct {
	mu sync.Mutex

	assistants   int
	threads      int
	vectorStores int

	uploadedFiles []string
	batchedFiles  []string
	attachedTo    []string
	deletedFiles  []string
	deletedStores []string
	instructions  []string

	storeFiles []string
	reply      string

	runErr    error
	uploadErr error
}

var _ assistant.API = &fakeAPI{}

func (f *fakeAPI) CreateAssistant(ctx context.Context, instructions, model string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assistants++
	return "asst_1", nil
}

func (f *fakeAPI) AttachVectorStore(ctx context.Context, assistantID, vectorStoreID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attachedTo = append(f.attachedTo, vectorStoreID)
	return nil
}

func (f *fakeAPI) CreateThread(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.threads++
	return "th_" + string(rune('0'+f.threads)), nil
}

func (f *fakeAPI) CreateRunAndPoll(ctx context.Context, threadID, assistantID, instructions string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instructions = append(f.instructions, instructions)
	return f.runErr
}

func (f *fakeAPI) LatestAssistantText(ctx context.Context, threadID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply, nil
}

func (f *fakeAPI) CreateVectorStore(ctx context.Context, name string, expiryDays int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vectorStores++
	return "vs_1", nil
}

func (f *fakeAPI) ListVectorStores(ctx context.Context) ([]assistant.VectorStore, error) {
	return []assistant.VectorStore{{ID: "vs_1"}}, nil
}

func (f *fakeAPI) DeleteVectorStore(ctx context.Context, vectorStoreID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedStores = append(f.deletedStores, vectorStoreID)
	return nil
}

func (f *fakeAPI) ListVectorStoreFiles(ctx context.Context, vectorStoreID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.storeFiles, nil
}

func (f *fakeAPI) UploadFile(ctx context.Context, name string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedFiles = append(f.uploadedFiles, name)
	return "file_1", nil
}

func (f *fakeAPI) AddFileToVectorStore(ctx context.Context, vectorStoreID, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchedFiles = append(f.batchedFiles, fileID)
	return nil
}

func (f *fakeAPI) DeleteFile(ctx context.Context, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedFiles = append(f.deletedFiles, fileID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type nopPublisher struct{}

func (nopPublisher) Publish(topic string, event events.Event) error { return nil }

type testEnv struct {
	api       *fakeAPI
	repo      *memory.SessionRepository
	sessions  ISessionService
	documents IDocumentService
	chat      IChatService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	api := &fakeAPI{reply: "hello there"}
	repo := memory.NewSessionRepository(time.Minute, time.Minute)
	files := storage.NewManager(filepath.Join(root, "dir"))

	cfg := &config.Config{}
	cfg.Assistant.Instructions = "You are a friendly, helpful assistant."
	cfg.Assistant.Model = "gpt-4o-mini"
	cfg.Assistant.VectorStoreName = "knowledge-base"
	cfg.Assistant.StoreExpiryDays = 1

	log := nopLogger{}
	sessions := NewSessionService(repo, files, api, cfg, log)
	documents := NewDocumentService(sessions, repo, files, api, nopPublisher{}, "DOCUMENT_INGESTED", log)
	chat := NewChatService(sessions, repo, api, nopPublisher{}, "CHAT_EXCHANGED",
		filepath.Join(root, "prompt_meeting_minutes.txt"), filepath.Join(root, "exports"), log)

	return &testEnv{
		api:       api,
		repo:      repo,
		sessions:  sessions,
		documents: documents,
		chat:      chat,
	}
}
