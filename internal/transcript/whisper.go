package transcript

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// Whisper transcribes with the OpenAI audio API.
type Whisper struct {
	client *openai.Client
}

// NewWhisper builds a Whisper transcriber. baseURL overrides the API endpoint when non-empty.
func NewWhisper(apiKey, baseURL string) *Whisper {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Whisper{client: openai.NewClientWithConfig(cfg)}
}

func (w *Whisper) Name() string { return "whisper" }

func (w *Whisper) Transcribe(ctx context.Context, path, _ string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: path,
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
