package discovery

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"trendscout/internal/llm"
	"trendscout/internal/logging"
)

const (
	maxKeywords      = 10
	maxPromptTags    = 25
	conversionTokens = 300
)

const conversionPrompt = `These are trending TikTok hashtags (last 7 days):
%s

Convert these into 10 natural search keywords for a content creator seeking trending content inspiration.
Rules:
- Convert hashtag slang to plain English: "gymtok" -> "gym workout", "cleantok" -> "cleaning routine"
- Group related hashtags into one keyword (2-4 words)
- Keep keywords specific and content-focused
- Avoid generic phrases like "trending content" or "viral video"

Return ONLY a JSON array of strings, no other text:
["keyword one", "keyword two", ...]`

// ConvertToKeywords turns hashtags into plain search keywords with gen. When gen is nil, is the
// none provider, or fails, the first ten raw hashtag names are returned instead.
func ConvertToKeywords(ctx context.Context, gen llm.Generator, tags []Hashtag) []string {
	if len(tags) == 0 {
		return []string{}
	}
	if gen == nil || gen.Provider() == llm.ProviderNone {
		return rawNames(tags)
	}
	kws, err := convertWithLLM(ctx, gen, tags)
	if err != nil {
		logging.Warn("keyword_conversion_failed", map[string]any{"provider": string(gen.Provider()), "error": err.Error()})
		return rawNames(tags)
	}
	return kws
}

func convertWithLLM(ctx context.Context, gen llm.Generator, tags []Hashtag) ([]string, error) {
	lines := make([]string, 0, maxPromptTags)
	for i, h := range tags {
		if i == maxPromptTags {
			break
		}
		lines = append(lines, fmt.Sprintf("#%s - %s views this week", h.Name, groupThousands(h.ViewSum)))
	}
	text, err := gen.Generate(ctx, llm.Request{
		Prompt:    fmt.Sprintf(conversionPrompt, strings.Join(lines, "\n")),
		MaxTokens: conversionTokens,
	})
	if err != nil {
		return nil, err
	}
	var kws []string
	if err := llm.ExtractJSON(text, &kws); err != nil {
		return nil, err
	}
	out := make([]string, 0, maxKeywords)
	for _, k := range kws {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
		if len(out) == maxKeywords {
			break
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no keywords in response")
	}
	return out, nil
}

func rawNames(tags []Hashtag) []string {
	out := make([]string, 0, maxKeywords)
	for i, h := range tags {
		if i == maxKeywords {
			break
		}
		out = append(out, h.Name)
	}
	return out
}

// groupThousands renders 1234567 as "1,234,567".
func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
