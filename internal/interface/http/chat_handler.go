package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/diveplanner/internal/domain/chat"
)

// SendChatMessage forwards a message to DiveBot.
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req chat.SendRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.chatSvc.Send(c.Request.Context(), req)
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChatTranscript returns the visible conversation.
func (h *Handler) ChatTranscript(c *gin.Context) {
	view, err := h.chatSvc.Transcript(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ResetChat discards a session.
func (h *Handler) ResetChat(c *gin.Context) {
	if err := h.chatSvc.Reset(c.Request.Context(), c.Param("id")); err != nil {
		abortWithAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
