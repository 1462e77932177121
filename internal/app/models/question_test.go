package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWasPublishedRecentlyWithFutureQuestion(t *testing.T) {
	now := time.Now()
	question := &Question{PubDate: now.Add(30 * 24 * time.Hour)}

	assert.False(t, question.WasPublishedRecently(now))
}

func TestWasPublishedRecentlyWithOldQuestion(t *testing.T) {
	now := time.Now()
	question := &Question{PubDate: now.Add(-(24*time.Hour + time.Second))}

	assert.False(t, question.WasPublishedRecently(now))
}

func TestWasPublishedRecentlyWithRecentQuestion(t *testing.T) {
	now := time.Now()
	question := &Question{PubDate: now.Add(-22 * time.Hour)}

	assert.True(t, question.WasPublishedRecently(now))
}

func TestWasPublishedRecentlyBoundaries(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		pubDate time.Time
		want    bool
	}{
		{"published exactly now", now, true},
		{"published exactly 24h ago", now.Add(-24 * time.Hour), false},
		{"published just inside the window", now.Add(-24*time.Hour + time.Millisecond), true},
		{"published one millisecond in the future", now.Add(time.Millisecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question := &Question{PubDate: tt.pubDate}
			assert.Equal(t, tt.want, question.WasPublishedRecently(now))
		})
	}
}

func TestIsPublished(t *testing.T) {
	now := time.Now()

	assert.True(t, (&Question{PubDate: now}).IsPublished(now))
	assert.True(t, (&Question{PubDate: now.Add(-30 * 24 * time.Hour)}).IsPublished(now))
	assert.False(t, (&Question{PubDate: now.Add(30 * 24 * time.Hour)}).IsPublished(now))
}
