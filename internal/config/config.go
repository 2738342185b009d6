// Package config defines service configuration and its loading order.
// Values are layered: defaults, then an optional YAML file, then environment
// variables with the INTERVIEW_ prefix.
package config

import "time"

type Config struct {
	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	LLM     LLMConfig     `koanf:"llm"`
	Storage StorageConfig `koanf:"storage"`
	Speech  SpeechConfig  `koanf:"speech"`
	Auth    AuthConfig    `koanf:"auth"`
	GCP     GCPConfig     `koanf:"gcp"`
}

// LLMConfig selects and tunes the text-generation backend.
type LLMConfig struct {
	// Backend is one of: mock, ollama, gemini.
	Backend string `koanf:"backend"`

	// OllamaURL is the base URL of the Ollama server.
	OllamaURL string `koanf:"ollama_url"`

	// Model is the model name passed to the backend.
	Model string `koanf:"model"`

	// GenTimeout bounds a single generation call.
	GenTimeout time.Duration `koanf:"gen_timeout"`
}

// StorageConfig selects where resumes and interview records live.
type StorageConfig struct {
	// Backend is one of: memory, sqlite, firestore.
	Backend string `koanf:"backend"`

	// SQLitePath is the database file, or ":memory:".
	SQLitePath string `koanf:"sqlite_path"`
}

// SpeechConfig wires the speech collaborators and audio output.
type SpeechConfig struct {
	// STTURL is the transcription endpoint (whisper-server style).
	STTURL string `koanf:"stt_url"`

	// TTSURL is the synthesis endpoint. Empty disables audio output.
	TTSURL string `koanf:"tts_url"`

	// AudioDir is where synthesized audio files are written.
	AudioDir string `koanf:"audio_dir"`
}

// AuthConfig configures the static token provider.
type AuthConfig struct {
	// AllowGuest accepts the "guest-token" development bypass.
	AllowGuest bool `koanf:"allow_guest"`

	// Tokens maps bearer tokens to "candidateID:Display Name" entries.
	Tokens map[string]string `koanf:"tokens"`
}

type GCPConfig struct {
	Project  string `koanf:"project"`
	Location string `koanf:"location"`
}

// New returns the configuration defaults.
func New() *Config {
	return &Config{
		Addr:     ":8080",
		LogLevel: "info",
		LLM: LLMConfig{
			Backend:    "ollama",
			OllamaURL:  "http://localhost:11434",
			Model:      "llama3",
			GenTimeout: 60 * time.Second,
		},
		Storage: StorageConfig{
			Backend:    "memory",
			SQLitePath: "interviews.db",
		},
		Speech: SpeechConfig{
			AudioDir: "audio_outputs",
		},
		Auth: AuthConfig{
			AllowGuest: true,
		},
		GCP: GCPConfig{
			Location: "us-central1",
		},
	}
}
