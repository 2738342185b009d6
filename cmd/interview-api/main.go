package main

import (
	"context"
	"log"
	"net/http"

	"github.com/voicehire/interview-api/internal/adapters/auth"
	httpadapter "github.com/voicehire/interview-api/internal/adapters/http"
	"github.com/voicehire/interview-api/internal/adapters/llm"
	"github.com/voicehire/interview-api/internal/adapters/speech"
	firestorestore "github.com/voicehire/interview-api/internal/adapters/storage/firestore"
	memstore "github.com/voicehire/interview-api/internal/adapters/storage/memory"
	sqlitestore "github.com/voicehire/interview-api/internal/adapters/storage/sqlite"
	"github.com/voicehire/interview-api/internal/app/interview"
	"github.com/voicehire/interview-api/internal/config"
	"github.com/voicehire/interview-api/internal/domain"
	"github.com/voicehire/interview-api/internal/observability"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	observability.SetLevel(cfg.LogLevel)

	// LLM backend
	var backend domain.LLMBackend
	switch cfg.LLM.Backend {
	case "mock":
		log.Println("[LLM] Using mock backend")
		backend = llm.NewMockLLM()
	case "gemini":
		log.Printf("[LLM] Using Gemini backend (model=%s)", cfg.LLM.Model)
		backend, err = llm.NewGeminiClient(ctx, cfg.GCP.Project, cfg.GCP.Location, cfg.LLM.Model)
		if err != nil {
			log.Fatalf("error initializing Gemini backend: %v", err)
		}
	default:
		log.Printf("[LLM] Using Ollama backend (url=%s model=%s)", cfg.LLM.OllamaURL, cfg.LLM.Model)
		backend = llm.NewOllamaClient(cfg.LLM.OllamaURL, cfg.LLM.Model)
	}

	// Storage: memory, SQLite or Firestore
	var (
		memory     domain.TranscriptMemory
		resumes    domain.ResumeStore
		interviews domain.InterviewStore
	)
	switch cfg.Storage.Backend {
	case "sqlite":
		log.Printf("[STORE] Using SQLite storage (path=%s)", cfg.Storage.SQLitePath)
		store, err := sqlitestore.NewStore(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("error initializing SQLite store: %v", err)
		}
		defer func() { _ = store.Close() }()

		// 1 store, implements 3 interfaces
		memory = store
		resumes = store
		interviews = store

	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCP.Project)
		store, err := firestorestore.NewStore(ctx, cfg.GCP.Project)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}
		defer func() { _ = store.Close() }()

		memory = store
		resumes = store
		interviews = store

	default:
		log.Println("[STORE] Using in-memory storage")
		memory = memstore.NewTranscriptStore()
		resumes = memstore.NewResumeStore()
		interviews = memstore.NewInterviewStore()
	}

	// Speech collaborators
	var stt domain.SpeechToText
	if cfg.Speech.STTURL != "" {
		client := speech.NewSTTClient(cfg.Speech.STTURL)
		defer client.Close()
		stt = client
	} else {
		log.Println("[SPEECH] No STT endpoint configured, using mock transcription")
		stt = speech.NewMock()
	}

	var tts domain.TextToSpeech
	if cfg.Speech.TTSURL != "" {
		client, err := speech.NewTTSClient(cfg.Speech.TTSURL, cfg.Speech.AudioDir)
		if err != nil {
			log.Fatalf("error initializing TTS client: %v", err)
		}
		defer client.Close()
		tts = client
	} else {
		log.Println("[SPEECH] No TTS endpoint configured, audio synthesis disabled")
		tts = speech.NewMock()
	}

	svc := interview.NewService(backend, memory, resumes, interviews, cfg.LLM.GenTimeout)

	handler := httpadapter.NewServer(
		svc,
		resumes,
		stt,
		tts,
		auth.NewStatic(cfg.Auth.Tokens, cfg.Auth.AllowGuest),
		cfg.Speech.AudioDir,
	)

	log.Println("Interview API listening on", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal(err)
	}
}
