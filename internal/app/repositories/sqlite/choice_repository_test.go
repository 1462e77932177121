package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alpersoy/polls/internal/app/models"
	"github.com/alpersoy/polls/internal/app/repositories"
)

func mustCreateChoice(t *testing.T, repos *repositories.Repositories, questionID int64, text string) *models.Choice {
	t.Helper()

	choice := &models.Choice{QuestionID: questionID, ChoiceText: text}
	require.NoError(t, repos.ChoiceRepository.Create(context.Background(), choice))
	require.NotZero(t, choice.ID)
	return choice
}

func TestChoiceCreateAndGetByID(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	question := mustCreateQuestion(t, repos, "Pick one.", time.Now().UTC())
	created := mustCreateChoice(t, repos, question.ID, "The sky")

	got, err := repos.ChoiceRepository.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, question.ID, got.QuestionID)
	assert.Equal(t, "The sky", got.ChoiceText)
	assert.EqualValues(t, 0, got.Votes)
}

func TestChoiceCreateDuplicateText(t *testing.T) {
	repos := newTestRepos(t)

	question := mustCreateQuestion(t, repos, "Pick one.", time.Now().UTC())
	mustCreateChoice(t, repos, question.ID, "The sky")

	dup := &models.Choice{QuestionID: question.ID, ChoiceText: "The sky"}
	err := repos.ChoiceRepository.Create(context.Background(), dup)
	assert.ErrorIs(t, err, repositories.ErrChoiceAlreadyExists)
}

func TestChoiceSameTextOnDifferentQuestions(t *testing.T) {
	repos := newTestRepos(t)
	now := time.Now().UTC()

	first := mustCreateQuestion(t, repos, "Pick one.", now)
	second := mustCreateQuestion(t, repos, "Pick another.", now)

	mustCreateChoice(t, repos, first.ID, "The sky")
	mustCreateChoice(t, repos, second.ID, "The sky")
}

func TestChoiceGetByIDNotFound(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.ChoiceRepository.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, repositories.ErrChoiceNotFound)
}

func TestListByQuestionIDOrder(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	question := mustCreateQuestion(t, repos, "Pick one.", time.Now().UTC())
	first := mustCreateChoice(t, repos, question.ID, "First")
	second := mustCreateChoice(t, repos, question.ID, "Second")

	choices, err := repos.ChoiceRepository.ListByQuestionID(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, choices, 2)
	assert.Equal(t, first.ID, choices[0].ID)
	assert.Equal(t, second.ID, choices[1].ID)
}

func TestVoteIncrements(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	question := mustCreateQuestion(t, repos, "Pick one.", time.Now().UTC())
	choice := mustCreateChoice(t, repos, question.ID, "The sky")

	require.NoError(t, repos.ChoiceRepository.Vote(ctx, question.ID, choice.ID))
	require.NoError(t, repos.ChoiceRepository.Vote(ctx, question.ID, choice.ID))

	got, err := repos.ChoiceRepository.GetByID(ctx, choice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Votes)
}

func TestVoteRejectsChoiceOfAnotherQuestion(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	question := mustCreateQuestion(t, repos, "Pick one.", now)
	other := mustCreateQuestion(t, repos, "Pick another.", now)
	choice := mustCreateChoice(t, repos, other.ID, "The sky")

	err := repos.ChoiceRepository.Vote(ctx, question.ID, choice.ID)
	assert.ErrorIs(t, err, repositories.ErrChoiceNotFound)

	got, err := repos.ChoiceRepository.GetByID(ctx, choice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, got.Votes)
}
