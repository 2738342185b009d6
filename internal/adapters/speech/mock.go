package speech

import "context"

// Mock is a no-op speech stack for tests and text-only deployments.
// Transcribe treats the audio bytes as UTF-8 text; Synthesize produces no
// audio resource.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (Mock) Transcribe(ctx context.Context, audio []byte) (string, error) {
	return string(audio), nil
}

func (Mock) Synthesize(ctx context.Context, text string) (string, error) {
	return "", nil
}

func (Mock) Close() {}
