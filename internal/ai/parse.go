package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/yungbote/studynotes-backend/internal/domain"
)

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 50
)

var numberedLine = regexp.MustCompile(`^\d+\.\s*`)

// NormalizeCount maps a requested question count into 1..MaxQuestionCount.
func NormalizeCount(count int) int {
	if count <= 0 {
		return DefaultQuestionCount
	}
	if count > MaxQuestionCount {
		return MaxQuestionCount
	}
	return count
}

// ParseQuestions reads model output as a JSON array of questions, or failing
// that, as lines that contain "?" or start with "N.". Items without a
// difficulty get diff.
func ParseQuestions(s string, diff domain.Difficulty) []domain.GeneratedQuestion {
	if qs, ok := parseJSONQuestions(s, diff); ok {
		return qs
	}
	var out []domain.GeneratedQuestion
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.Contains(line, "?") && !numberedLine.MatchString(line) {
			continue
		}
		q := strings.TrimSpace(numberedLine.ReplaceAllString(line, ""))
		if q == "" {
			continue
		}
		out = append(out, domain.GeneratedQuestion{Question: q, Difficulty: diff})
	}
	return out
}

func parseJSONQuestions(s string, diff domain.Difficulty) ([]domain.GeneratedQuestion, bool) {
	s = stripCodeFence(s)
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}
	var raw []struct {
		Question   string `json:"question"`
		Difficulty string `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	out := make([]domain.GeneratedQuestion, 0, len(raw))
	for _, r := range raw {
		q := strings.TrimSpace(r.Question)
		if q == "" {
			continue
		}
		d := diff
		if strings.TrimSpace(r.Difficulty) != "" {
			d = domain.ParseDifficulty(r.Difficulty)
		}
		out = append(out, domain.GeneratedQuestion{Question: q, Difficulty: d})
	}
	return out, true
}

// stripCodeFence removes a surrounding ``` or ```json fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
