// Package domain holds the study-notes entities and the pure functions that
// every repository backend applies to them: defaults, patch merging,
// derived fields and validation.
package domain

import (
	"math"
	"strings"
	"time"
)

type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryWork     Category = "work"
	CategoryResearch Category = "research"
	CategoryOther    Category = "other"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps free input onto the enum, defaulting to medium.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// GeneratedQuestion is the AI gateway's question shape, also stored on notes.
type GeneratedQuestion struct {
	Question   string     `json:"question" validate:"required"`
	Difficulty Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// Percentage is score/total*100, or 0 when total is not positive.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

// SessionMinutes is the rounded number of minutes between start and end.
func SessionMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(math.Round(end.Sub(start).Minutes()))
}

// AddToSet appends v unless it is empty or already present.
func AddToSet(set []string, v string) []string {
	if v == "" {
		return set
	}
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

// StoredTime is the precision every backend keeps: UTC microseconds.
func StoredTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Microsecond)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
