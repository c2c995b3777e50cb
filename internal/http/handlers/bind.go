package handlers

import "github.com/gin-gonic/gin"

// BindJSON decodes the body and answers a flat 400 on malformed JSON.
// Field-level validation stays in the handlers because the contract fixes
// the exact error strings per field.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		RespondBadRequest(ctx, "Invalid request body")

		return false
	}

	return true
}
