// Package speech contains the speech collaborator adapters. Both clients are
// constructed eagerly with an explicit lifecycle (create once at wiring time,
// Close on shutdown) instead of lazily-initialized globals.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// STTClient implements domain.SpeechToText against a whisper-server style
// transcription endpoint: multipart audio in, {"text": "..."} out.
type STTClient struct {
	url  string
	http *http.Client
}

func NewSTTClient(url string) *STTClient {
	return &STTClient{
		url:  url,
		http: &http.Client{},
	}
}

func (c *STTClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "turn.webm")
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription call: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription service returned status %d", res.StatusCode)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read transcription response: %w", err)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	return out.Text, nil
}

func (c *STTClient) Close() {
	c.http.CloseIdleConnections()
}
