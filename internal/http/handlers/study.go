package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/http/response"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type StudyHandler struct {
	study services.StudyService
}

func NewStudyHandler(study services.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

// POST /api/study/session
func (h *StudyHandler) StartSession(c *gin.Context) {
	var req domain.NewStudySession
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.study.Start(c.Request.Context(), userID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Study session started", "session": session})
}

// PUT /api/study/session/:id/end
func (h *StudyHandler) EndSession(c *gin.Context) {
	var req struct {
		Achievements []string `json:"achievements"`
	}
	// The body is optional.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apierr.Validation("invalid request body: %v", err))
		return
	}
	res, err := h.study.End(c.Request.Context(), userID(c), c.Param("id"), req.Achievements)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":        "Study session ended",
		"session":        res.Session,
		"totalStudyTime": res.TotalStudyTime,
	})
}

// GET /api/study/sessions?subject=&startDate=&endDate=&limit=
func (h *StudyHandler) ListSessions(c *gin.Context) {
	from, err := queryTime(c, "startDate")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := queryTime(c, "endDate")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	sessions, err := h.study.List(c.Request.Context(), userID(c), repos.SessionFilter{
		Subject: c.Query("subject"),
		From:    from,
		To:      to,
		Limit:   limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions, "count": len(sessions)})
}

// GET /api/study/recommendations
func (h *StudyHandler) Recommendations(c *gin.Context) {
	rec, err := h.study.Recommendations(c.Request.Context(), userID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, rec)
}

// GET /api/study/analytics
func (h *StudyHandler) Analytics(c *gin.Context) {
	analytics, err := h.study.Analytics(c.Request.Context(), userID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analytics": analytics})
}
