package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/repositories"
	"github.com/alpersoy/polls/internal/pkg/apperrors"
	"github.com/alpersoy/polls/internal/pkg/validation"
)

// Common question errors
var (
	ErrQuestionValidation = errors.New("question validation failed")
	ErrChoiceValidation   = errors.New("choice validation failed")
)

// QuestionService handles poll question operations. All read paths see
// only published questions: a question whose pub_date is after the
// current instant does not exist as far as callers are concerned.
type QuestionService struct {
	questionRepo repositories.QuestionRepository
	choiceRepo   repositories.ChoiceRepository
	now          func() time.Time
}

// NewQuestionService creates a new question service instance
func NewQuestionService(questionRepo repositories.QuestionRepository, choiceRepo repositories.ChoiceRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
		now:          time.Now,
	}
}

// WithClock overrides the service clock. Tests use this to pin "now".
func (s *QuestionService) WithClock(now func() time.Time) *QuestionService {
	s.now = now
	return s
}

// validateQuestion validates question data before database operations
func (s *QuestionService) validateQuestion(question *models.Question) error {
	if question == nil {
		return fmt.Errorf("%w: question is nil", ErrQuestionValidation)
	}

	text := strings.TrimSpace(question.QuestionText)
	ok := validation.NewStringValidation(text).
		WithMinLength(validation.QuestionTextMinLength).
		WithMaxLength(validation.QuestionTextMaxLength).
		Validate()
	if !ok {
		return fmt.Errorf("%w: question text must be between %d and %d characters",
			ErrQuestionValidation, validation.QuestionTextMinLength, validation.QuestionTextMaxLength)
	}

	return nil
}

// CreateQuestion creates a new question. A zero PubDate defaults to the
// current instant; a future PubDate schedules the question.
func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := s.validateQuestion(question); err != nil {
		return err
	}

	if question.PubDate.IsZero() {
		question.PubDate = s.now()
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return fmt.Errorf("error creating question: %w", err)
	}

	return nil
}

// GetPublishedQuestion retrieves a published question with its choices.
// Unpublished (future-dated) questions are reported as not found.
func (s *QuestionService) GetPublishedQuestion(ctx context.Context, id int64) (*models.Question, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid question ID", ErrQuestionValidation)
	}

	question, err := s.questionRepo.GetPublishedByID(ctx, id, s.now())
	if err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	choices, err := s.choiceRepo.ListByQuestionID(ctx, question.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving choices: %w", err)
	}
	question.Choices = choices

	return question, nil
}

// ListLatestQuestions retrieves published questions, newest first.
// limit <= 0 returns all published questions.
func (s *QuestionService) ListLatestQuestions(ctx context.Context, limit int) ([]*models.Question, error) {
	questions, err := s.questionRepo.ListPublished(ctx, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("error retrieving questions: %w", err)
	}

	return questions, nil
}

// ListQuestionsPage retrieves one page of published questions together
// with the total count of published questions.
func (s *QuestionService) ListQuestionsPage(ctx context.Context, offset uint64, limit int) ([]*models.Question, int64, error) {
	questions, total, err := s.questionRepo.ListPublishedPage(ctx, s.now(), offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving questions: %w", err)
	}

	return questions, total, nil
}

// UpdateQuestion updates an existing question
func (s *QuestionService) UpdateQuestion(ctx context.Context, question *models.Question) error {
	if err := s.validateQuestion(question); err != nil {
		return err
	}

	if question.ID <= 0 {
		return fmt.Errorf("%w: invalid question ID", ErrQuestionValidation)
	}

	if question.PubDate.IsZero() {
		question.PubDate = s.now()
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("error updating question: %w", err)
	}

	return nil
}

// DeleteQuestion deletes a question and its choices
func (s *QuestionService) DeleteQuestion(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid question ID", ErrQuestionValidation)
	}

	if err := s.questionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("error deleting question: %w", err)
	}

	return nil
}

// AddChoice adds a choice to a question. The question must exist but
// does not have to be published yet, so choices can be prepared before
// a scheduled question goes live.
func (s *QuestionService) AddChoice(ctx context.Context, questionID int64, choiceText string) (*models.Choice, error) {
	text := strings.TrimSpace(choiceText)
	ok := validation.NewStringValidation(text).
		WithMinLength(validation.ChoiceTextMinLength).
		WithMaxLength(validation.ChoiceTextMaxLength).
		Validate()
	if !ok {
		return nil, fmt.Errorf("%w: choice text must be between %d and %d characters",
			ErrChoiceValidation, validation.ChoiceTextMinLength, validation.ChoiceTextMaxLength)
	}

	if _, err := s.questionRepo.GetByID(ctx, questionID); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error checking question: %w", err)
	}

	choice := &models.Choice{
		QuestionID: questionID,
		ChoiceText: text,
	}

	if err := s.choiceRepo.Create(ctx, choice); err != nil {
		if errors.Is(err, repositories.ErrChoiceAlreadyExists) {
			return nil, apperrors.ErrChoiceAlreadyExists
		}
		return nil, fmt.Errorf("error creating choice: %w", err)
	}

	return choice, nil
}

// ListChoices retrieves the choices of a published question
func (s *QuestionService) ListChoices(ctx context.Context, questionID int64) ([]*models.Choice, error) {
	if _, err := s.questionRepo.GetPublishedByID(ctx, questionID, s.now()); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error checking question: %w", err)
	}

	choices, err := s.choiceRepo.ListByQuestionID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving choices: %w", err)
	}

	return choices, nil
}

// Vote records a vote for one choice of a published question. Voting on
// an unpublished question or a choice of another question is reported
// as not found.
func (s *QuestionService) Vote(ctx context.Context, questionID, choiceID int64) error {
	if choiceID <= 0 {
		return apperrors.ErrNoChoiceSelected
	}

	if _, err := s.questionRepo.GetPublishedByID(ctx, questionID, s.now()); err != nil {
		if errors.Is(err, repositories.ErrQuestionNotFound) {
			return apperrors.ErrQuestionNotFound
		}
		return fmt.Errorf("error checking question: %w", err)
	}

	if err := s.choiceRepo.Vote(ctx, questionID, choiceID); err != nil {
		if errors.Is(err, repositories.ErrChoiceNotFound) {
			return apperrors.ErrChoiceNotFound
		}
		return fmt.Errorf("error recording vote: %w", err)
	}

	return nil
}
