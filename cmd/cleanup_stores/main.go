package main

import (
	"context"
	"log"

	"knowledge-chatbot-be/internal/config"
	"knowledge-chatbot-be/pkg/assistant"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Deletes EVERY vector store visible to the configured credential, together
// with every file association inside each one. This is not scoped to any
// session; run it only as a deliberate admin sweep.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env: %v", err)
	}
	cfg := config.Load()

	client := assistant.NewClient(
		cfg.Assistant.BaseURL,
		cfg.Assistant.APIKey,
		cfg.Assistant.PollInterval,
		cfg.Assistant.RunTimeout,
	)
	ctx := context.Background()

	color.Cyan("🧹 Vector store cleanup (credential-wide)\n")

	stores, err := client.ListVectorStores(ctx)
	if err != nil {
		color.Red("Failed to list vector stores: %v", err)
		return
	}
	color.Yellow("Found %d vector store(s)", len(stores))

	for _, vs := range stores {
		fileIds, err := client.ListVectorStoreFiles(ctx, vs.ID)
		if err != nil {
			color.Red("  %s (%s): list files failed: %v", vs.ID, vs.Name, err)
			continue
		}

		for _, fileId := range fileIds {
			if err := client.DeleteFile(ctx, fileId); err != nil {
				color.Red("  %s: delete file %s failed: %v", vs.ID, fileId, err)
			}
		}

		if err := client.DeleteVectorStore(ctx, vs.ID); err != nil {
			color.Red("  %s (%s): delete failed: %v", vs.ID, vs.Name, err)
			continue
		}
		color.Green("  Deleted %s (%s), %d file(s)", vs.ID, vs.Name, len(fileIds))
	}

	color.Cyan("Done.")
}
