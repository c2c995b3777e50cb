package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/padhaihub/tutorhub/internal/config"
	"github.com/padhaihub/tutorhub/internal/domain/user"
	"github.com/padhaihub/tutorhub/internal/repo/postgres"
	"github.com/padhaihub/tutorhub/internal/security"
)

type UserByEmailGetter interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type LoginHandler struct {
	users UserByEmailGetter
}

func NewLoginHandler(users UserByEmailGetter) *LoginHandler {
	return &LoginHandler{users: users}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// The session token is a static placeholder, not a signed credential. That
// is a deliberate simplification of this API, so no token manager is wired.
const placeholderToken = "example-token"

// Login checks email/password against the stored bcrypt hash. Unknown email
// and wrong password are deliberately indistinguishable to the caller.
func (h *LoginHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		// this endpoint speaks {"message": ...}, unlike the rest of the API
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)

	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}

		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   placeholderToken,
		"userId":  foundUser.ID,
	})
}
