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

type UserGetter interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type HistoryWriter interface {
	Insert(ctx context.Context, userID, question, answer string) error
}

// Generator is the completion API behind the plain ask path.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AskHandler struct {
	users   UserGetter
	history HistoryWriter
	gemini  Generator
	log     *slog.Logger
}

func NewAskHandler(users UserGetter, history HistoryWriter, gemini Generator, log *slog.Logger) *AskHandler {
	return &AskHandler{
		users:   users,
		history: history,
		gemini:  gemini,
		log:     log,
	}
}

type AskRequest struct {
	Question string `json:"question"`
	UserID   string `json:"userId"`
}

// Ask identifies the user by id, asks Gemini, and persists the exchange.
// A provider failure degrades to a literal error string in the answer; it is
// still persisted and still returns 200. Only validation, an unknown user,
// or a DB failure abort the request.
func (h *AskHandler) Ask(ctx *gin.Context) {
	var req AskRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		RespondBadRequest(ctx, "Question cannot be empty")
		return
	}

	if req.UserID == "" {
		RespondBadRequest(ctx, "User ID is required")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	u, err := h.users.GetByID(cctx, req.UserID)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}

		RespondInternalDetails(ctx, "Internal server error", err)
		return
	}

	prompt := ai.ExplainPrompt(u.Board, req.Question)

	// the provider call rides the request context: no timeout of its own
	answer := h.fetchAnswer(ctx.Request.Context(), prompt)

	ictx, icancel := config.WithTimeout(2 * time.Second)

	defer icancel()

	err = h.history.Insert(ictx, req.UserID, req.Question, answer)

	if err != nil {
		RespondInternalDetails(ctx, "Internal server error", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"answer": answer})
}

// fetchAnswer maps every provider failure to a literal fallback string.
func (h *AskHandler) fetchAnswer(ctx context.Context, prompt string) string {
	answer, err := h.gemini.Generate(ctx, prompt)

	if err == nil {
		return answer
	}

	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		return "Error: Gemini API key is missing."
	case errors.Is(err, ai.ErrEmptyCompletion):
		return "No answer received from Gemini."
	default:
		h.log.WarnContext(ctx, "gemini call failed", "err", err)
		return "Error: Gemini API failed."
	}
}
