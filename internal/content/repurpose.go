package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trendscout/internal/llm"
)

// Hook is the opening line of a script.
type Hook struct {
	Text      string `json:"text"`
	Format    string `json:"format"`
	Reasoning string `json:"reasoning"`
}

// Description is one caption option with its hashtags.
type Description struct {
	Text     string   `json:"text"`
	Tone     string   `json:"tone"`
	Hashtags []string `json:"hashtags"`
}

// Script is a short-form video adapted from a transcript.
type Script struct {
	ContentType  string        `json:"content_type"`
	CoreMessage  string        `json:"core_message"`
	Hook         Hook          `json:"hook"`
	Script       string        `json:"script"`
	Descriptions []Description `json:"descriptions"`
}

const systemPrompt = `You are an experienced %[1]s social media creator who makes viral TikTok and Instagram Reels content.
Your job is to adapt the given transcript for a %[1]s-speaking audience.

CORE RULE: do not translate, adapt.
Keep the essence of the content but fit it to the culture, language and tone of %[1]s TikTok.`

const repurposePrompt = `Analyse the transcript of the following TikTok/Reels video and adapt it for a %[1]s-speaking audience.

TRANSCRIPT:
%[2]s

---

Follow these steps:

1. CONTENT TYPE: what kind of video is this? (tutorial / tips / story / motivation / entertainment / information / other)
2. CORE MESSAGE: the one-sentence essence of the video.
3. HOOK: a %[1]s hook that stops the viewer in the first 2-3 seconds. Pick a format (question / shock / curiosity / number / other) and briefly explain why.
4. SCRIPT in %[1]s: open with the hook, short spoken sentences, TikTok rhythm, end with a clear call to action.
5. THREE DESCRIPTIONS: casual, curiosity, direct. Each at most 150 characters plus 3-5 relevant hashtags.

---

Return ONLY JSON, nothing else:

{
  "content_type": "...",
  "core_message": "...",
  "hook": {"text": "...", "format": "question/shock/curiosity/number/other", "reasoning": "..."},
  "script": "...",
  "descriptions": [
    {"text": "...", "tone": "casual", "hashtags": ["...", "..."]},
    {"text": "...", "tone": "curiosity", "hashtags": ["...", "..."]},
    {"text": "...", "tone": "direct", "hashtags": ["...", "..."]}
  ]
}`

const repurposeTokens = 2048

// Repurposer adapts transcripts into ready-to-record scripts.
type Repurposer struct {
	Gen llm.Generator
	// Language of the target audience; empty means Turkish.
	Language string
}

// Repurpose generates a Script for transcript. A missing provider and a malformed response are errors;
// there is no non-LLM fallback.
func (r *Repurposer) Repurpose(ctx context.Context, transcript string) (Script, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return Script{}, errors.New("repurpose: transcript is empty")
	}
	if r.Gen == nil || r.Gen.Provider() == llm.ProviderNone {
		return Script{}, fmt.Errorf("repurpose: %w; set GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY in .env", llm.ErrNoProvider)
	}
	lang := r.Language
	if lang == "" {
		lang = "Turkish"
	}
	text, err := r.Gen.Generate(ctx, llm.Request{
		System:    fmt.Sprintf(systemPrompt, lang),
		Prompt:    fmt.Sprintf(repurposePrompt, lang, transcript),
		MaxTokens: repurposeTokens,
	})
	if err != nil {
		return Script{}, fmt.Errorf("repurpose: %w", err)
	}
	var s Script
	if err := llm.ExtractJSON(text, &s); err != nil {
		return Script{}, fmt.Errorf("repurpose: %w", err)
	}
	if s.Script == "" && s.Hook.Text == "" {
		return Script{}, fmt.Errorf("repurpose: %w: no script or hook", llm.ErrMalformedJSON)
	}
	return s, nil
}
