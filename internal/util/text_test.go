package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractHashtags(t *testing.T) {
	got := ExtractHashtags("Leg day #Gym #fitness and more #gym! no#tag?")
	assert.Equal(t, []string{"gym", "fitness", "gym", "tag"}, got)
	assert.Empty(t, ExtractHashtags(""))
}

func TestDedupeKeepsOrder(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Dedupe([]string{"b", "a", "b", "c", "a"}))
}

func TestBioKeywords(t *testing.T) {
	got := BioKeywords("I am a Coach for the strong, and MY gym is open")
	assert.Contains(t, got, "coach")
	assert.Contains(t, got, "strong")
	assert.Contains(t, got, "gym")
	assert.Contains(t, got, "open")
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "and")
	assert.NotContains(t, got, "am")
	assert.Empty(t, BioKeywords(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10, "..."))
	assert.Equal(t, "abc...", Truncate("abcdef", 3, "..."))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "1.5M", FormatNumber(1_500_000))
	assert.Equal(t, "15K", FormatNumber(15_300))
	assert.Equal(t, "999", FormatNumber(999))
}
