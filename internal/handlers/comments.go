package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Comment string `json:"comment"`
}

// AddCommentRequest is an exported model for Swagger docs of the addComment payload.
type AddCommentRequest struct {
	// Free text; blank after trimming is rejected
	Comment string `json:"comment" example:"cleaned panels, output back to normal"`
}

func topicParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("topic"))
}

// @Summary      Comment history
// @Description  Comments of one device, newest first. An unreachable comment log yields an empty list.
// @Tags         comments
// @Produce      json
// @Param        topic  path      string  true  "Device id"
// @Success      200    {object}  map[string]interface{}  "topic, count, comments"
// @Failure      401    {object}  map[string]string
// @Router       /api/v1/comments/{topic} [get]
// @Security     BearerAuth
func (h *Handler) getComments(c *gin.Context) {
	topic := topicParam(c)
	history := h.services.Comments.History(c.Request.Context(), topic)
	c.JSON(http.StatusOK, gin.H{
		"topic":    topic,
		"count":    len(history),
		"comments": history,
	})
}

// @Summary      Add comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        topic  path      string             true  "Device id"
// @Param        body   body      AddCommentRequest  true  "Comment payload"
// @Success      201    {object}  map[string]string
// @Failure      400    {object}  map[string]string  "empty comment"
// @Failure      401    {object}  map[string]string
// @Failure      502    {object}  map[string]string  "comment log unavailable"
// @Router       /api/v1/comments/{topic} [post]
// @Security     BearerAuth
func (h *Handler) addComment(c *gin.Context) {
	var req commentRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	uid := currentUser(c)
	topic := topicParam(c)
	if err := h.services.Comments.Add(c.Request.Context(), uid, topic, req.Comment); err != nil {
		h.respondError(c, "comment_add_failed", err, "user_id", uid, "topic", topic)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "saved", "topic": topic})
}
