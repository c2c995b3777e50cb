package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padhaihub/tutorhub/internal/ai"
	"github.com/padhaihub/tutorhub/internal/config"
	"github.com/padhaihub/tutorhub/internal/domain/user"
	"github.com/padhaihub/tutorhub/internal/repo/postgres"
)

type UserByTokenGetter interface {
	GetByToken(ctx context.Context, token string) (user.User, error)
}

// Completer is the completion API behind the token-gated ask path.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TokenAskHandler serves the bearer-token ask variant mounted on
// /api/signup. It intentionally diverges from AskHandler: a provider
// failure here is a hard 500 with no history write, not a fallback string.
type TokenAskHandler struct {
	users      UserByTokenGetter
	history    HistoryWriter
	openrouter Completer
	log        *slog.Logger
}

func NewTokenAskHandler(users UserByTokenGetter, history HistoryWriter, openrouter Completer, log *slog.Logger) *TokenAskHandler {
	return &TokenAskHandler{
		users:      users,
		history:    history,
		openrouter: openrouter,
		log:        log,
	}
}

type TokenAskRequest struct {
	Question string `json:"question"`
}

func (h *TokenAskHandler) Ask(ctx *gin.Context) {
	token := bearerToken(ctx)

	var req TokenAskRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, "Missing token or question")
		return
	}

	if token == "" || req.Question == "" {
		RespondBadRequest(ctx, "Missing token or question")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	u, err := h.users.GetByToken(cctx, token)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondUnAuthorized(ctx, "Invalid token")
			return
		}

		RespondInternal(ctx, "Internal server error")
		return
	}

	prompt := ai.AnswerPrompt(u.Board, req.Question)

	answer, err := h.openrouter.Complete(ctx.Request.Context(), prompt)

	if err != nil {
		// an empty completion still counts as an answer on this path
		if errors.Is(err, ai.ErrEmptyCompletion) {
			answer = "No answer received."
		} else {
			h.log.ErrorContext(ctx.Request.Context(), "openrouter call failed", "err", err)
			RespondInternal(ctx, "Internal server error")
			return
		}
	}

	ictx, icancel := config.WithTimeout(2 * time.Second)

	defer icancel()

	err = h.history.Insert(ictx, u.ID, req.Question, answer)

	if err != nil {
		RespondInternal(ctx, "Internal server error")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"answer": answer})
}

func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
