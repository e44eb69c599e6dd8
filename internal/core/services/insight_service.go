package services

import (
	"context"
	"log"
	"strings"
	"time"

	"mandoubi/internal/core/domain"

	"golang.org/x/time/rate"
)

const (
	insightInstruction = "You are a sales expert analysing the performance of a field-sales team. " +
		"Analyze this field-sales performance data and suggest an action plan."

	// AnalysisUnavailable is returned whenever the generator cannot answer
	AnalysisUnavailable = "analysis unavailable"
)

// Insight is the outcome of a performance analysis
type Insight struct {
	Text      string `json:"text"`
	Available bool   `json:"available"`
}

// InsightService asks the text generator for a performance summary.
// It never mutates state and never fails: every problem degrades to AnalysisUnavailable.
type InsightService struct {
	generator TextGenerator
	limiter   *rate.Limiter
	timeout   time.Duration
}

// NewInsightService creates a new insight service. generator may be nil when AI is not configured.
func NewInsightService(generator TextGenerator, perMinute int, timeout time.Duration) *InsightService {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &InsightService{
		generator: generator,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		timeout:   timeout,
	}
}

// Summarize renders requests as "agentName: status" pairs joined by ", "
func Summarize(requests []*domain.SalesRequest) string {
	parts := make([]string, 0, len(requests))
	for _, r := range requests {
		parts = append(parts, r.AgentName+": "+string(r.Status))
	}
	return strings.Join(parts, ", ")
}

// Analyze returns the generated analysis of requests
func (s *InsightService) Analyze(ctx context.Context, requests []*domain.SalesRequest) *Insight {
	unavailable := &Insight{Text: AnalysisUnavailable}

	if s.generator == nil {
		return unavailable
	}
	if !s.limiter.Allow() {
		log.Println("⚠️ Insight request rate limited")
		return unavailable
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	prompt := "Analyze the following sales data: " + Summarize(requests)
	text, err := s.generator.Generate(ctx, insightInstruction, prompt)
	if err != nil {
		log.Printf("⚠️ Insight generation failed: %v", err)
		return unavailable
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return unavailable
	}
	return &Insight{Text: text, Available: true}
}
