package domain

import "time"

type ChatMessage struct {
	Role      Role      `json:"role" validate:"oneof=user assistant system"`
	Content   string    `json:"content" validate:"notblank"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatContext struct {
	Subject      string   `json:"subject"`
	RelatedNotes []string `json:"relatedNotes"`
	SessionGoals []string `json:"sessionGoals"`
}

type ChatHistory struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner"`
	Messages  []ChatMessage `json:"messages" validate:"dive"`
	Context   ChatContext   `json:"context"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

type NewChat struct {
	Messages []ChatMessage `json:"messages"`
	Context  ChatContext   `json:"context"`
}

type ChatPatch struct {
	Messages *[]ChatMessage
	Context  *ChatContext
}

// StampMessages copies msgs, giving any message without a timestamp now.
func StampMessages(msgs []ChatMessage, now time.Time) []ChatMessage {
	out := make([]ChatMessage, len(msgs))
	for i, m := range msgs {
		if m.Timestamp.IsZero() {
			m.Timestamp = now
		}
		out[i] = m
	}
	return out
}

func NewChatRecord(id, ownerID string, in NewChat, now time.Time) *ChatHistory {
	return &ChatHistory{
		ID:        id,
		OwnerID:   ownerID,
		Messages:  StampMessages(in.Messages, now),
		Context:   cloneChatContext(in.Context),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *ChatHistory) Apply(p ChatPatch, now time.Time) {
	if p.Messages != nil {
		c.Messages = StampMessages(*p.Messages, now)
	}
	if p.Context != nil {
		c.Context = cloneChatContext(*p.Context)
	}
}

func (c *ChatHistory) Prepare() error {
	c.Messages = nonNil(c.Messages)
	for i := range c.Messages {
		c.Messages[i].Timestamp = StoredTime(c.Messages[i].Timestamp)
	}
	c.Context.RelatedNotes = nonNil(c.Context.RelatedNotes)
	c.Context.SessionGoals = nonNil(c.Context.SessionGoals)
	return Validate(c)
}

func cloneChatContext(in ChatContext) ChatContext {
	in.RelatedNotes = append([]string{}, in.RelatedNotes...)
	in.SessionGoals = append([]string{}, in.SessionGoals...)
	return in
}
