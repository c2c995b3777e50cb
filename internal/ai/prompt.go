package ai

import "fmt"

// ExplainPrompt is the template for the plain ask path. The answer is shown
// as raw text, so the model is told to skip markdown entirely.
func ExplainPrompt(board, question string) string {
	return fmt.Sprintf(
		"You are a tutor for the %s board. Provide a simple and clear explanation for the following question without using extra formatting like bold (**), hashtags (#), or special characters: %s",
		board, question,
	)
}

// AnswerPrompt is the shorter template used by the token-gated ask path.
func AnswerPrompt(board, question string) string {
	return fmt.Sprintf("You are a tutor for the %s board. Answer the following: %s", board, question)
}
