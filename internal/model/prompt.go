package model

// Prompt is a stored template with {subject}/{body}/{sender} placeholders.
type Prompt struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Template   string `json:"template"`
	PromptType string `json:"prompt_type"`
}
