package memory

import (
	"errors"
	"testing"
	"time"

	"knowledge-chatbot-be/pkg/store"
)

func TestSessionRoundTrip(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)

	session := &store.Session{ID: "s1", UploadFolder: "dir/2025-01-02T03_04_05"}
	repo.Save(session)

	got, err := repo.Get("s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UploadFolder != session.UploadFolder {
		t.Errorf("UploadFolder = %q", got.UploadFolder)
	}

	// Mutations through the pointer are visible on the next Get.
	got.ThreadID = "th_1"
	repo.Save(got)
	again, _ := repo.Get("s1")
	if again.ThreadID != "th_1" {
		t.Errorf("ThreadID = %q, want th_1", again.ThreadID)
	}
}

func TestSessionMissing(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)

	if _, err := repo.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	repo := NewSessionRepository(10*time.Millisecond, time.Millisecond)
	repo.Save(&store.Session{ID: "s1"})

	time.Sleep(30 * time.Millisecond)

	if _, err := repo.Get("s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after TTL", err)
	}
}

func TestSessionDelete(t *testing.T) {
	repo := NewSessionRepository(time.Minute, time.Minute)
	repo.Save(&store.Session{ID: "s1"})
	repo.Delete("s1")

	if _, err := repo.Get("s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound after delete", err)
	}
}
