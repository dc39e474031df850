package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendscout/internal/llm"
)

type stubGen struct {
	out string
	err error
	req llm.Request
}

func (s *stubGen) Generate(_ context.Context, req llm.Request) (string, error) {
	s.req = req
	return s.out, s.err
}

func (s *stubGen) Provider() llm.Provider { return llm.ProviderGemini }

const sample = "```json\n" + `{
  "content_type": "tips",
  "core_message": "Stretch before lifting",
  "hook": {"text": "Stop lifting cold!", "format": "shock", "reasoning": "interrupts the scroll"},
  "script": "Stop lifting cold! ...",
  "descriptions": [
    {"text": "warm up first", "tone": "casual", "hashtags": ["gym", "warmup", "fitness"]},
    {"text": "why do you get hurt?", "tone": "curiosity", "hashtags": ["gym"]},
    {"text": "warm up. always.", "tone": "direct", "hashtags": ["gym"]}
  ]
}` + "\n```"

func TestRepurposeParsesScript(t *testing.T) {
	gen := &stubGen{out: sample}
	r := &Repurposer{Gen: gen, Language: "Spanish"}
	s, err := r.Repurpose(context.Background(), "  always stretch before you lift  ")
	require.NoError(t, err)
	assert.Equal(t, "tips", s.ContentType)
	assert.Equal(t, "shock", s.Hook.Format)
	require.Len(t, s.Descriptions, 3)
	assert.Equal(t, []string{"gym", "warmup", "fitness"}, s.Descriptions[0].Hashtags)

	assert.Contains(t, gen.req.System, "Spanish")
	assert.Contains(t, gen.req.Prompt, "always stretch before you lift\n")
	assert.Equal(t, repurposeTokens, gen.req.MaxTokens)
}

func TestRepurposeErrors(t *testing.T) {
	ctx := context.Background()

	_, err := (&Repurposer{Gen: llm.None{}}).Repurpose(ctx, "text")
	assert.ErrorIs(t, err, llm.ErrNoProvider)

	_, err = (&Repurposer{Gen: &stubGen{out: sample}}).Repurpose(ctx, "   ")
	assert.Error(t, err)

	_, err = (&Repurposer{Gen: &stubGen{out: "I cannot help with that."}}).Repurpose(ctx, "text")
	assert.ErrorIs(t, err, llm.ErrMalformedJSON)

	_, err = (&Repurposer{Gen: &stubGen{out: `{"content_type":"tips"}`}}).Repurpose(ctx, "text")
	assert.ErrorIs(t, err, llm.ErrMalformedJSON)

	boom := errors.New("quota exceeded")
	_, err = (&Repurposer{Gen: &stubGen{err: boom}}).Repurpose(ctx, "text")
	assert.ErrorIs(t, err, boom)
}

func TestRepurposeDefaultsToTurkish(t *testing.T) {
	gen := &stubGen{out: sample}
	_, err := (&Repurposer{Gen: gen}).Repurpose(context.Background(), "text")
	require.NoError(t, err)
	assert.Contains(t, gen.req.Prompt, "Turkish-speaking audience")
}
