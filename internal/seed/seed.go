package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	appModels "github.com/alpersoy/polls/internal/app/models"
	appRepos "github.com/alpersoy/polls/internal/app/repositories"
)

// CreateDefaultData creates a couple of sample poll questions when the
// store is empty, so a fresh instance has something to render.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Questions/Choices)...")

	existing, err := repos.QuestionRepository.ListPublished(ctx, time.Now(), 1)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking existing questions")
		return err
	}
	if len(existing) > 0 {
		lgr.Info().Msg("Questions already exist, skipping seed")
		return nil
	}

	samples := []struct {
		text    string
		choices []string
	}{
		{"What's new?", []string{"Not much", "The sky", "Just hacking again"}},
		{"Which backend do you deploy on?", []string{"PostgreSQL", "SQLite"}},
	}

	for _, sample := range samples {
		question := &appModels.Question{
			QuestionText: sample.text,
			PubDate:      time.Now(),
		}
		if err := repos.QuestionRepository.Create(ctx, question); err != nil {
			lgr.Error().Err(err).Str("question", sample.text).Msg("Error creating sample question")
			return err
		}

		for _, choiceText := range sample.choices {
			choice := &appModels.Choice{
				QuestionID: question.ID,
				ChoiceText: choiceText,
			}
			if err := repos.ChoiceRepository.Create(ctx, choice); err != nil {
				lgr.Error().Err(err).Str("choice", choiceText).Msg("Error creating sample choice")
				return err
			}
		}
	}

	lgr.Info().Msg("Default data created.")
	return nil
}
