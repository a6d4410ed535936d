package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/http/response"
	"github.com/yungbote/studynotes-backend/internal/services"
)

type ChatHandler struct {
	chat services.ChatService
}

func NewChatHandler(chat services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// GET /api/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	history, err := h.chat.History(c.Request.Context(), userID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chatHistory": history})
}

// POST /api/chat/session
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req struct {
		Context domain.ChatContext `json:"context"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	session, err := h.chat.Create(c.Request.Context(), userID(c), req.Context)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"message": "Chat session created", "chatSession": session})
}

// GET /api/chat/session/:id
func (h *ChatHandler) GetSession(c *gin.Context) {
	session, err := h.chat.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chatSession": session})
}

// POST /api/chat/message
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		Message   string `json:"message"`
		SessionID string `json:"sessionId"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	reply, err := h.chat.SendMessage(c.Request.Context(), userID(c), req.SessionID, req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"message":   "Message sent successfully",
		"response":  reply.Response,
		"sessionId": reply.SessionID,
	})
}

// DELETE /api/chat/session/:id
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.chat.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "Chat session deleted successfully"})
}
