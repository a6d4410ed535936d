package domain

import (
	"strings"
	"time"
)

const DefaultNoteTitle = "Untitled Note"

type Concept struct {
	Term        string `json:"term"`
	Explanation string `json:"explanation"`
}

// AIGenerated is filled lazily by the AI endpoints.
type AIGenerated struct {
	Summary   string              `json:"summary"`
	KeyPoints []string            `json:"keyPoints"`
	Questions []GeneratedQuestion `json:"questions" validate:"dive"`
	Concepts  []Concept           `json:"concepts"`
}

type NoteMarketplace struct {
	IsPublic    bool    `json:"isPublic"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	RatingCount int     `json:"ratingCount" validate:"gte=0"`
	Downloads   int     `json:"downloads" validate:"gte=0"`
}

// AddRating folds one 1..5 rating into the running average.
func (m NoteMarketplace) AddRating(rating int) NoteMarketplace {
	m.Rating = (m.Rating*float64(m.RatingCount) + float64(rating)) / float64(m.RatingCount+1)
	m.RatingCount++
	return m
}

type Note struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner"`
	Title       string          `json:"title"`
	Content     string          `json:"content" validate:"notblank"`
	Subject     string          `json:"subject"`
	Tags        []string        `json:"tags"`
	Category    Category        `json:"category" validate:"oneof=personal study work research other"`
	AIGenerated AIGenerated     `json:"aiGenerated"`
	Marketplace NoteMarketplace `json:"marketplace"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type NewNote struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Subject  string   `json:"subject"`
	Tags     []string `json:"tags"`
	Category Category `json:"category"`
}

type NotePatch struct {
	Title       *string
	Content     *string
	Subject     *string
	Tags        *[]string
	Category    *Category
	AIGenerated *AIGenerated
	Marketplace *NoteMarketplace
}

func NewNoteRecord(id, ownerID string, in NewNote, now time.Time) *Note {
	return &Note{
		ID:        id,
		OwnerID:   ownerID,
		Title:     in.Title,
		Content:   in.Content,
		Subject:   in.Subject,
		Tags:      append([]string{}, in.Tags...),
		Category:  in.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *Note) Apply(p NotePatch) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Subject != nil {
		n.Subject = *p.Subject
	}
	if p.Tags != nil {
		n.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	if p.AIGenerated != nil {
		n.AIGenerated = *p.AIGenerated
	}
	if p.Marketplace != nil {
		n.Marketplace = *p.Marketplace
	}
}

func (n *Note) Prepare() error {
	if strings.TrimSpace(n.Title) == "" {
		n.Title = DefaultNoteTitle
	}
	if n.Category == "" {
		n.Category = CategoryPersonal
	}
	n.Tags = nonNil(n.Tags)
	n.AIGenerated.KeyPoints = nonNil(n.AIGenerated.KeyPoints)
	n.AIGenerated.Questions = nonNil(n.AIGenerated.Questions)
	n.AIGenerated.Concepts = nonNil(n.AIGenerated.Concepts)
	return Validate(n)
}
