package dto

import "github.com/alpersoy/polls/internal/app/models"

// ChoiceResponse represents a question choice in API responses
type ChoiceResponse struct {
	ID         int64  `json:"id" example:"1"`
	QuestionID int64  `json:"question_id" example:"1"`
	ChoiceText string `json:"choice_text" example:"The sky"`
	Votes      int64  `json:"votes" example:"0"`
}

// CreateChoiceRequest represents choice creation data
type CreateChoiceRequest struct {
	ChoiceText string `json:"choice_text" binding:"required"`
}

// VoteRequest represents a vote for one choice of a question
type VoteRequest struct {
	ChoiceID int64 `json:"choice_id" binding:"required"`
}

// FromChoice converts a models.Choice to a ChoiceResponse
func FromChoice(choice *models.Choice) ChoiceResponse {
	return ChoiceResponse{
		ID:         choice.ID,
		QuestionID: choice.QuestionID,
		ChoiceText: choice.ChoiceText,
		Votes:      choice.Votes,
	}
}
