package store

import (
	"sync"
	"time"
)

// Chat turn roles
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// ChatTurn is a single entry of the conversation history.
// Turns are append-only; history is only ever cleared in bulk.
type ChatTurn struct {
	Role    string `json:"role"` // "user" | "ai"
	Message string `json:"message"`
}

// Session represents the active browser session state in memory.
// Remote handles (assistant, thread, vector store) are opaque ids owned by the
// hosted API; each is created lazily, at most once, unless explicitly torn down.
type Session struct {
	// mu serializes access to the mutable fields below. The repository hands
	// out one shared *Session per id, so concurrent requests carrying the
	// same token must hold the lock for the whole read or read-modify-write.
	mu sync.Mutex

	ID string `json:"id"`

	// UploadFolder is derived from the session creation timestamp and never
	// changes for the life of the session. Resetting storage empties it but
	// keeps the path.
	UploadFolder string `json:"upload_folder"`

	AssistantID   string `json:"assistant_id"`
	ThreadID      string `json:"thread_id"`
	VectorStoreID string `json:"vector_store_id"`

	ChatHistory []ChatTurn `json:"chat_history"`

	CreatedAt time.Time `json:"created_at"`
}

// Lock takes the session's own mutex. Services hold it across a whole
// operation so that a turn in flight cannot interleave with a history read,
// a clear, or a storage reset on the same session.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

// AppendExchange commits a completed user/assistant exchange as one unit, so
// the history never holds a user turn whose reply was lost to a remote error.
// Callers hold the session lock.
func (s *Session) AppendExchange(prompt, reply string) {
	s.ChatHistory = append(s.ChatHistory,
		ChatTurn{Role: RoleUser, Message: prompt},
		ChatTurn{Role: RoleAI, Message: reply},
	)
}
