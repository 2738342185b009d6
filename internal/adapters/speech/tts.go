package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TTSClient implements domain.TextToSpeech against a JSON-in, wav-out
// synthesis endpoint. Synthesized files land in audioDir and are referenced
// as /audio/{name}, which the HTTP layer serves statically.
type TTSClient struct {
	url      string
	audioDir string
	http     *http.Client
}

// NewTTSClient creates the synthesis client and its output directory.
func NewTTSClient(url, audioDir string) (*TTSClient, error) {
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}
	return &TTSClient{
		url:      url,
		audioDir: audioDir,
		http:     &http.Client{},
	}, nil
}

func (c *TTSClient) Synthesize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("encode synthesis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("synthesis call: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("synthesis service returned status %d", res.StatusCode)
	}

	audio, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read synthesis response: %w", err)
	}

	name := uuid.NewString() + ".wav"
	if err := os.WriteFile(filepath.Join(c.audioDir, name), audio, 0o644); err != nil {
		return "", fmt.Errorf("write audio file: %w", err)
	}
	return "/audio/" + name, nil
}

func (c *TTSClient) Close() {
	c.http.CloseIdleConnections()
}
