package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "DOCUMENT_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation used by the concrete events below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIngested records that an uploaded document finished remote
// ingestion into a session's vector store.
func NewDocumentIngested(sessionID, fileName, fileID, vectorStoreID string) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"session_id":      sessionID,
			"file_name":       fileName,
			"file_id":         fileID,
			"vector_store_id": vectorStoreID,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatExchanged records one completed user/assistant exchange.
func NewChatExchanged(sessionID, threadID string, promptLen, replyLen int) Event {
	return BaseEvent{
		Type: "CHAT_EXCHANGED",
		Data: map[string]interface{}{
			"session_id": sessionID,
			"thread_id":  threadID,
			"prompt_len": promptLen,
			"reply_len":  replyLen,
		},
		OccurredAt: time.Now(),
	}
}
