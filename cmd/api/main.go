package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notion-intel/internal/config"
	"notion-intel/internal/http"
	"notion-intel/internal/indexer"
	"notion-intel/internal/llm"
	"notion-intel/internal/notion"
	"notion-intel/internal/search"
	"notion-intel/internal/service"
	"notion-intel/internal/storage"
	"notion-intel/internal/vectorstore"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.SlogLevel().String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	documentRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	scrapeRepo := storage.NewScrapeRepo(db)

	vectorStore, err := newVectorStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}
	if closer, ok := vectorStore.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}
	slog.Info("Vector collection ready",
		"backend", vectorStore.Backend(),
		"collection", cfg.QdrantCollection,
		"vector_size", cfg.VectorSize,
	)

	// Left nil when embeddings are disabled so the pipeline and search engine see no embedder.
	var embedder indexer.Embedder
	if cfg.EmbeddingsEnabled() {
		client := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.VectorSize)
		if _, err := client.EmbedTexts(ctx, []string{"test"}); err != nil {
			log.Fatalf("Failed to validate embedding client: %v", err)
		}
		embedder = client
		slog.Info("Embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.VectorSize)
	} else {
		slog.Warn("EMBEDDING_BASE_URL not set, chunks will be stored without vectors and search is disabled")
	}

	notionClient := notion.NewClient(cfg.NotionBaseURL, cfg.NotionAPIKey, cfg.NotionVersion, cfg.NotionRateLimit)

	pipeline := indexer.NewPipeline(
		notionClient,
		embedder,
		documentRepo,
		chunkRepo,
		scrapeRepo,
		vectorStore,
		cfg.QdrantCollection,
		cfg.ScrapeWorkers,
	)

	scrapeService := service.NewScrapeService(pipeline, service.Defaults{
		MaxDepth:     cfg.MaxDepth,
		ChunkSize:    cfg.ChunkSize,
		ChunkOverlap: cfg.ChunkOverlap,
	})

	searchEngine := search.NewEngine(embedder, vectorStore, cfg.QdrantCollection, chunkRepo)

	router := http.NewRouter(&http.Deps{
		ScrapeService:     scrapeService,
		SearchEngine:      searchEngine,
		VectorStore:       vectorStore,
		CollectionName:    cfg.QdrantCollection,
		EmbeddingsEnabled: cfg.EmbeddingsEnabled(),
	})

	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting API server", "addr", server.Addr, "workers", cfg.ScrapeWorkers)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatalf("API server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("API server shutdown failed", "error", err)
	}
}

func newVectorStore(cfg *config.Config) (vectorstore.VectorStore, error) {
	if cfg.VectorBackend == config.BackendChromem {
		store, err := vectorstore.NewChromemStore(cfg.ChromemPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		return nil, err
	}
	return store, nil
}
