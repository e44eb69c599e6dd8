package ai

import (
	"context"
	"testing"
)

func TestNewGeminiClientRequiresKey(t *testing.T) {
	if _, err := NewGeminiClient(context.Background(), "", "gemini-2.5-flash"); err == nil {
		t.Error("expected error for empty api key")
	}
}
