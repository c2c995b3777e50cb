package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padhaihub/tutorhub/internal/config"
)

type HistoryReader interface {
	ListQuestionsByUser(ctx context.Context, userID string) ([]string, error)
}

type HistoryHandler struct {
	history HistoryReader
}

func NewHistoryHandler(history HistoryReader) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type HistoryRequest struct {
	UserID string `json:"userId"`
}

// List returns the user's past questions, newest first. Answers are not
// exposed here. A user with no rows gets an empty list, not null.
func (h *HistoryHandler) List(ctx *gin.Context) {
	var req HistoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.UserID == "" {
		RespondBadRequest(ctx, "User ID is required")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	questions, err := h.history.ListQuestionsByUser(cctx, req.UserID)

	if err != nil {
		RespondInternal(ctx, "Failed to fetch history")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"history": questions})
}
