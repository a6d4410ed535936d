// Package ai answers every AI-backed operation. A live model is tried when one
// is configured; any failure, timeout or unusable output is logged, counted
// and answered by a local fallback so callers always get a result.
package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/observability"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
	"github.com/yungbote/studynotes-backend/internal/platform/openai"
)

const (
	OpSummarize         = "summarize"
	OpGenerateQuestions = "generate_questions"
	OpExplainConcept    = "explain_concept"
	OpRecommendStudy    = "recommend_study"
	OpConverse          = "converse"
)

const DefaultTimeout = 30 * time.Second

const persona = "You are GuiderAI, an educational assistant. Help students learn, " +
	"clarify concepts, build study plans and answer questions in a friendly, encouraging way."

type Gateway struct {
	client  openai.Client
	log     *logger.Logger
	metrics *observability.Metrics
	timeout time.Duration
	limiter *rate.Limiter
}

// NewGateway builds a gateway. A nil client pins every call to the fallback
// path for the life of the process.
func NewGateway(client openai.Client, baseLog *logger.Logger, metrics *observability.Metrics, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log := baseLog.With("service", "AIGateway")
	if client == nil {
		log.Warn("no model provider configured; AI features use local fallbacks")
	}
	return &Gateway{client: client, log: log, metrics: metrics, timeout: timeout}
}

// Live reports whether a model provider is configured.
func (g *Gateway) Live() bool { return g.client != nil }

// Throttle caps outbound model calls at perSecond with the given burst. A
// call that cannot get a token before its timeout takes the fallback path.
func (g *Gateway) Throttle(perSecond float64, burst int) {
	if perSecond <= 0 {
		g.limiter = nil
		return
	}
	g.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
}

// run is the single place that chooses between the live and fallback paths.
// parse turns raw model text into a result and reports whether it is usable.
func run[T any](ctx context.Context, g *Gateway, op string, req openai.Request, parse func(string) (T, bool), fallback func() T) T {
	start := time.Now()
	if g.client == nil {
		g.metrics.ObserveAI(op, observability.PathFallback, time.Since(start))
		return fallback()
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	var raw string
	err := g.wait(callCtx)
	if err == nil {
		raw, err = g.client.Complete(callCtx, req)
	}
	if err == nil {
		if out, ok := parse(raw); ok {
			g.metrics.ObserveAI(op, observability.PathLive, time.Since(start))
			return out
		}
		err = fmt.Errorf("unusable model output (%d bytes)", len(raw))
	}
	g.log.Warn("ai call failed, using fallback", "operation", op, "error", err, "duration_ms", time.Since(start).Milliseconds())
	g.metrics.ObserveAI(op, observability.PathFallback, time.Since(start))
	return fallback()
}

func (g *Gateway) wait(ctx context.Context) error {
	if g.limiter == nil {
		return nil
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("provider throttle: %w", err)
	}
	return nil
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func userPrompt(system, user string, temperature float32, maxTokens int) openai.Request {
	return openai.Request{
		System:      system,
		Messages:    []openai.Message{{Role: string(domain.RoleUser), Content: user}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

func (g *Gateway) Summarize(ctx context.Context, content string) string {
	req := userPrompt(
		"You are an educational assistant. Summarize the notes into concise key points.",
		"Please summarize these notes:\n\n"+content,
		0.7, 500,
	)
	return run(ctx, g, OpSummarize, req, nonEmpty, func() string { return fallbackSummary(content) })
}

// GenerateQuestions returns at most count questions (count is normalized
// into 1..50, 5 when unset) tagged with the requested difficulty.
func (g *Gateway) GenerateQuestions(ctx context.Context, content string, count int, difficulty string) []domain.GeneratedQuestion {
	count = NormalizeCount(count)
	diff := domain.ParseDifficulty(difficulty)
	req := userPrompt(
		fmt.Sprintf("You are an educational assistant. Generate %d %s difficulty questions based on the notes. "+
			`Return them as a JSON array: [{"question": "...", "difficulty": "%s"}]`, count, diff, diff),
		content,
		0.8, 800,
	)
	parse := func(s string) ([]domain.GeneratedQuestion, bool) {
		qs := ParseQuestions(s, diff)
		if len(qs) > count {
			qs = qs[:count]
		}
		return qs, len(qs) > 0
	}
	return run(ctx, g, OpGenerateQuestions, req, parse, func() []domain.GeneratedQuestion {
		return fallbackQuestions(count, diff)
	})
}

func (g *Gateway) ExplainConcept(ctx context.Context, concept, background string) string {
	user := fmt.Sprintf("Please explain the concept: %q", concept)
	if strings.TrimSpace(background) != "" {
		user += "\n\nContext: " + background
	}
	req := userPrompt(
		"You are an educational assistant. Explain concepts in simple, clear language with practical examples suitable for students.",
		user,
		0.7, 600,
	)
	return run(ctx, g, OpExplainConcept, req, nonEmpty, func() string { return fallbackExplanation(concept) })
}

func (g *Gateway) RecommendStudy(ctx context.Context, profile domain.Profile, recentTopics []string) string {
	subjects := joinOr(profile.Subjects, "General")
	level := profile.EducationLevel
	if strings.TrimSpace(level) == "" {
		level = "Not specified"
	}
	user := fmt.Sprintf("User profile:\nSubjects: %s\nEducation level: %s\nWeak areas: %s\n\nRecent topics: %s\n\nProvide study recommendations.",
		subjects, level, joinOr(profile.WeakAreas, "None identified"), joinOr(recentTopics, "None"))
	req := userPrompt(
		"You are an educational assistant. Provide personalized study recommendations based on the student profile and recent activity.",
		user,
		0.8, 500,
	)
	return run(ctx, g, OpRecommendStudy, req, nonEmpty, fallbackRecommendations)
}

// Converse answers the latest turn of history. The persona is always the
// first message sent to the model.
func (g *Gateway) Converse(ctx context.Context, history []domain.ChatMessage, cc domain.ChatContext) string {
	system := persona
	if s := strings.TrimSpace(cc.Subject); s != "" {
		system += "\nThe student is currently studying: " + s + "."
	}
	if len(cc.SessionGoals) > 0 {
		system += "\nSession goals: " + strings.Join(cc.SessionGoals, "; ") + "."
	}
	msgs := make([]openai.Message, 0, len(history))
	for _, m := range history {
		if m.Role == domain.RoleSystem {
			continue
		}
		msgs = append(msgs, openai.Message{Role: string(m.Role), Content: m.Content})
	}
	req := openai.Request{System: system, Messages: msgs, Temperature: 0.8, MaxTokens: 800}
	return run(ctx, g, OpConverse, req, nonEmpty, func() string { return fallbackReply(history) })
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
