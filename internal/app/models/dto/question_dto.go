package dto

import (
	"time"

	"github.com/alpersoy/polls/internal/app/models"
)

// QuestionResponse represents a poll question in API responses
type QuestionResponse struct {
	ID                   int64            `json:"id" example:"1"`
	QuestionText         string           `json:"question_text" example:"What's new?"`
	PubDate              time.Time        `json:"pub_date" example:"2025-04-23T12:00:00Z"`
	WasPublishedRecently bool             `json:"was_published_recently" example:"true"`
	Choices              []ChoiceResponse `json:"choices,omitempty"`
}

// CreateQuestionRequest represents question creation data. PubDate is
// optional and defaults to the current instant; a future value schedules
// the question for later publication.
type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text" binding:"required"`
	PubDate      *time.Time `json:"pub_date"`
}

// UpdateQuestionRequest represents question update data
type UpdateQuestionRequest struct {
	QuestionText string     `json:"question_text" binding:"required"`
	PubDate      *time.Time `json:"pub_date"`
}

// QuestionListResponse represents a page of questions
type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	PaginationInfo
}

// FromQuestion converts a models.Question to a QuestionResponse,
// deriving the recency flag at the given instant.
func FromQuestion(question *models.Question, now time.Time) QuestionResponse {
	resp := QuestionResponse{
		ID:                   question.ID,
		QuestionText:         question.QuestionText,
		PubDate:              question.PubDate,
		WasPublishedRecently: question.WasPublishedRecently(now),
	}

	for _, choice := range question.Choices {
		resp.Choices = append(resp.Choices, FromChoice(choice))
	}

	return resp
}

// FromQuestions converts a slice of questions
func FromQuestions(questions []*models.Question, now time.Time) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, question := range questions {
		responses = append(responses, FromQuestion(question, now))
	}
	return responses
}
