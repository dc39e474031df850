package transcript

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"trendscout/internal/logging"
)

const transcribePrompt = "Transcribe all speech in this video accurately. " +
	"Return ONLY the spoken words: no timestamps, no descriptions, no labels. " +
	"If there is no speech, return '[No speech detected]'."

// Gemini uploads the file to the Files API and asks the model for a verbatim transcript.
type Gemini struct {
	client       *genai.Client
	model        string
	pollAttempts int
	pollInterval time.Duration
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, pollAttempts: 30, pollInterval: 2 * time.Second}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Transcribe(ctx context.Context, path, mimeType string) (string, error) {
	file, err := g.client.Files.UploadFromPath(ctx, path, &genai.UploadFileConfig{MIMEType: mimeType, DisplayName: "trendscout_video"})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	name := file.Name
	defer func() {
		if _, err := g.client.Files.Delete(context.WithoutCancel(ctx), name, nil); err != nil {
			logging.Warn("gemini_file_delete_failed", map[string]any{"file": name, "error": err.Error()})
		}
	}()

	active := false
	for i := 0; i < g.pollAttempts; i++ {
		file, err = g.client.Files.Get(ctx, name, nil)
		if err != nil {
			return "", fmt.Errorf("file status: %w", err)
		}
		if file.State == genai.FileStateActive {
			active = true
			break
		}
		if file.State == genai.FileStateFailed {
			return "", fmt.Errorf("gemini file processing failed")
		}
		select {
		case <-time.After(g.pollInterval):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if !active {
		return "", fmt.Errorf("gemini file processing timed out after %s", time.Duration(g.pollAttempts)*g.pollInterval)
	}

	parts := []*genai.Part{
		genai.NewPartFromURI(file.URI, mimeType),
		genai.NewPartFromText(transcribePrompt),
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return resp.Text(), nil
}
