package domain

// Clone methods return deep copies so callers never share slices with a
// store's internal state.

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string{}, s...)
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T{}, s...)
}

func (u *User) Clone() *User {
	out := *u
	out.Profile.Subjects = cloneStrings(u.Profile.Subjects)
	out.Profile.WeakAreas = cloneStrings(u.Profile.WeakAreas)
	out.StudyPatterns.PreferredSubjects = cloneStrings(u.StudyPatterns.PreferredSubjects)
	out.StudyPatterns.WeakAreas = cloneStrings(u.StudyPatterns.WeakAreas)
	return &out
}

func (n *Note) Clone() *Note {
	out := *n
	out.Tags = cloneStrings(n.Tags)
	out.AIGenerated.KeyPoints = cloneStrings(n.AIGenerated.KeyPoints)
	out.AIGenerated.Questions = cloneSlice(n.AIGenerated.Questions)
	out.AIGenerated.Concepts = cloneSlice(n.AIGenerated.Concepts)
	return &out
}

func (q *Quiz) Clone() *Quiz {
	out := *q
	out.SourceNotes = cloneStrings(q.SourceNotes)
	if q.Questions != nil {
		out.Questions = cloneQuestions(q.Questions)
	}
	return &out
}

func (a *QuizAttempt) Clone() *QuizAttempt {
	out := *a
	out.Answers = cloneSlice(a.Answers)
	return &out
}

func (c *ChatHistory) Clone() *ChatHistory {
	out := *c
	out.Messages = cloneSlice(c.Messages)
	out.Context.RelatedNotes = cloneStrings(c.Context.RelatedNotes)
	out.Context.SessionGoals = cloneStrings(c.Context.SessionGoals)
	return &out
}

func (s *StudySession) Clone() *StudySession {
	out := *s
	out.Notes = cloneStrings(s.Notes)
	out.Quizzes = cloneStrings(s.Quizzes)
	out.AIInteractions = cloneSlice(s.AIInteractions)
	out.Goals = cloneStrings(s.Goals)
	out.Achievements = cloneStrings(s.Achievements)
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	return &out
}
