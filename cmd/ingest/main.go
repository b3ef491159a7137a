// Command ingest loads pre-extracted book text into the chunk corpus.
// Each input file is chunked, embedded, and stored with its title and
// topic, ready for quiz generation and chat retrieval.
//
// Usage:
//
//	ingest -title "DK Science Encyclopedia" -topic space book.txt
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"buddy/internal/config"
	"buddy/internal/database"
	"buddy/internal/repository"
	"buddy/internal/vector"
)

func main() {
	title := flag.String("title", "", "book title (defaults to the file name)")
	topic := flag.String("topic", "", "topic label for every chunk")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Usage: ingest -title <title> -topic <topic> <file.txt> [file.txt...]")
	}

	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	embedder, err := vector.NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}
	store := vector.NewStore(repository.NewChunkRepository(db), embedder)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", path, err)
		}

		bookTitle := *title
		if bookTitle == "" {
			bookTitle = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		stored, err := store.Ingest(ctx, bookTitle, *topic, string(data))
		if err != nil {
			log.Fatalf("Failed to ingest %s: %v", path, err)
		}
		log.Printf("Ingested %s: %d chunks (topic=%q)", path, len(stored), *topic)
	}
}
