package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/http/response"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type QuizHandler struct {
	quizzes services.QuizService
}

func NewQuizHandler(quizzes services.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

func quizFilter(c *gin.Context) (repos.QuizFilter, error) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return repos.QuizFilter{}, err
	}
	f := repos.QuizFilter{
		Subject: c.Query("subject"),
		Search:  c.Query("search"),
		SortBy:  repos.ParseSortKey(c.Query("sort")),
		Limit:   limit,
	}
	if d := c.Query("difficulty"); d != "" {
		f.Difficulty = domain.Difficulty(d)
	}
	return f, nil
}

// POST /api/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var req domain.NewQuiz
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	quiz, err := h.quizzes.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Quiz created successfully", "quiz": quiz})
}

// POST /api/quizzes/generate
func (h *QuizHandler) Generate(c *gin.Context) {
	var req services.GenerateQuizInput
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	quiz, err := h.quizzes.GenerateFromNotes(c.Request.Context(), userID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Quiz generated successfully", "quiz": quiz})
}

// GET /api/quizzes?subject=&difficulty=&search=&sort=&limit=
func (h *QuizHandler) List(c *gin.Context) {
	f, err := quizFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	quizzes, err := h.quizzes.List(c.Request.Context(), userID(c), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quizzes": quizzes, "count": len(quizzes)})
}

// GET /api/quizzes/public
func (h *QuizHandler) ListPublic(c *gin.Context) {
	f, err := quizFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	quizzes, err := h.quizzes.ListPublic(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quizzes": quizzes, "count": len(quizzes)})
}

// GET /api/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.quizzes.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quiz": quiz})
}

// POST /api/quizzes/:id/attempt
func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	var req struct {
		Answers   []string `json:"answers"`
		TimeSpent int      `json:"timeSpent"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.quizzes.SubmitAttempt(c.Request.Context(), userID(c), c.Param("id"), services.SubmitAttemptInput{
		Answers:   req.Answers,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":     "Quiz submitted successfully",
		"attemptId":   res.AttemptID,
		"score":       res.Score,
		"totalPoints": res.TotalPoints,
		"percentage":  res.Percentage,
		"answers":     res.Answers,
	})
}

// GET /api/quizzes/attempts/history?quizId=&limit=
func (h *QuizHandler) Attempts(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	attempts, err := h.quizzes.Attempts(c.Request.Context(), userID(c), repos.AttemptFilter{
		QuizID: c.Query("quizId"),
		Limit:  limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"attempts": attempts, "count": len(attempts)})
}

// POST /api/quizzes/:id/share
func (h *QuizHandler) Share(c *gin.Context) {
	var req struct {
		IsPublic bool `json:"isPublic"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	quiz, err := h.quizzes.Share(c.Request.Context(), userID(c), c.Param("id"), req.IsPublic)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": shareMessage("Quiz", req.IsPublic), "quiz": quiz})
}
