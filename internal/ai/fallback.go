package ai

import (
	"fmt"
	"strings"

	"github.com/yungbote/studynotes-backend/internal/domain"
)

const summaryPreviewWords = 50

func fallbackSummary(content string) string {
	words := strings.Fields(content)
	preview := words
	if len(preview) > summaryPreviewWords {
		preview = preview[:summaryPreviewWords]
	}
	return fmt.Sprintf("Summary: %s...\n\nKey Points:\n"+
		"- This is an automatic preview, not an AI summary\n"+
		"- Configure an OpenAI API key for AI-powered summaries\n"+
		"- The note contains approximately %d words",
		strings.Join(preview, " "), len(words))
}

func fallbackQuestions(count int, diff domain.Difficulty) []domain.GeneratedQuestion {
	out := make([]domain.GeneratedQuestion, count)
	for i := range out {
		out[i] = domain.GeneratedQuestion{
			Question:   fmt.Sprintf("Sample question %d based on your notes? (Configure an OpenAI API key for AI-generated questions)", i+1),
			Difficulty: diff,
		}
	}
	return out
}

func fallbackExplanation(concept string) string {
	return fmt.Sprintf("Explanation of %q:\n\n"+
		"AI explanations are not available right now. Configure an OpenAI API key to get one.\n\n"+
		"Once enabled, %q will be explained in simple terms with practical examples.", concept, concept)
}

func fallbackRecommendations() string {
	return "Study Recommendations:\n\n" +
		"1. Review your recent notes regularly\n" +
		"2. Practice with quizzes to reinforce learning\n" +
		"3. Set daily study goals\n\n" +
		"(Configure an OpenAI API key for personalized AI recommendations)"
}

// fallbackReply echoes the most recent user message.
func fallbackReply(history []domain.ChatMessage) string {
	last := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleUser {
			last = history[i].Content
			break
		}
	}
	return fmt.Sprintf("I understand you asked: %q\n\n"+
		"GuiderAI chat is running without a model provider. Configure an OpenAI API key to enable full answers.", last)
}
