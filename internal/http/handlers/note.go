package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/http/response"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type NoteHandler struct {
	notes services.NoteService
}

func NewNoteHandler(notes services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type updateNoteReq struct {
	Title    *string          `json:"title"`
	Content  *string          `json:"content"`
	Subject  *string          `json:"subject"`
	Tags     *[]string        `json:"tags"`
	Category *domain.Category `json:"category"`
}

func noteFilter(c *gin.Context) (repos.NoteFilter, error) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return repos.NoteFilter{}, err
	}
	return repos.NoteFilter{
		Subject:  c.Query("subject"),
		Category: domain.Category(c.Query("category")),
		Search:   c.Query("search"),
		SortBy:   repos.ParseSortKey(c.Query("sort")),
		Limit:    limit,
	}, nil
}

// POST /api/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var req domain.NewNote
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	note, err := h.notes.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Note created successfully", "note": note})
}

// GET /api/notes?subject=&category=&search=&sort=&limit=
func (h *NoteHandler) List(c *gin.Context) {
	f, err := noteFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	notes, err := h.notes.List(c.Request.Context(), userID(c), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notes": notes, "count": len(notes)})
}

// GET /api/notes/public?subject=&search=&sort=
func (h *NoteHandler) ListPublic(c *gin.Context) {
	f, err := noteFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	notes, err := h.notes.ListPublic(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"notes": notes, "count": len(notes)})
}

// GET /api/notes/:id
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"note": note})
}

// PUT /api/notes/:id
func (h *NoteHandler) Update(c *gin.Context) {
	var req updateNoteReq
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	note, err := h.notes.Update(c.Request.Context(), userID(c), c.Param("id"), domain.NotePatch{
		Title:    req.Title,
		Content:  req.Content,
		Subject:  req.Subject,
		Tags:     req.Tags,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Note updated successfully", "note": note})
}

// DELETE /api/notes/:id
func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Note deleted successfully"})
}

// POST /api/notes/:id/summarize
func (h *NoteHandler) Summarize(c *gin.Context) {
	summary, err := h.notes.Summarize(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Summary generated successfully", "summary": summary})
}

// POST /api/notes/:id/generate-questions?count=5&difficulty=medium
func (h *NoteHandler) GenerateQuestions(c *gin.Context) {
	count, err := queryInt(c, "count", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	questions, err := h.notes.GenerateQuestions(c.Request.Context(), userID(c), c.Param("id"), count, c.Query("difficulty"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Questions generated successfully", "questions": questions})
}

// POST /api/notes/:id/explain-concept
func (h *NoteHandler) ExplainConcept(c *gin.Context) {
	var req struct {
		Concept string `json:"concept"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	explanation, err := h.notes.ExplainConcept(c.Request.Context(), userID(c), c.Param("id"), req.Concept)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"concept": req.Concept, "explanation": explanation})
}

// POST /api/notes/:id/share
func (h *NoteHandler) Share(c *gin.Context) {
	var req struct {
		IsPublic bool `json:"isPublic"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	note, err := h.notes.Share(c.Request.Context(), userID(c), c.Param("id"), req.IsPublic)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": shareMessage("Note", req.IsPublic), "note": note})
}

// POST /api/notes/:id/rate
func (h *NoteHandler) Rate(c *gin.Context) {
	var req struct {
		Rating int `json:"rating"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	res, err := h.notes.Rate(c.Request.Context(), c.Param("id"), req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":       "Rating submitted successfully",
		"averageRating": res.AverageRating,
		"ratingCount":   res.RatingCount,
	})
}

func shareMessage(entity string, public bool) string {
	if public {
		return entity + " shared successfully"
	}
	return entity + " unshared successfully"
}
