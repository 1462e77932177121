package models

import "time"

// RecencyWindow is the length of the window in which a published
// question counts as recent.
const RecencyWindow = 24 * time.Hour

// Question represents a poll question
type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Choices      []*Choice `json:"choices,omitempty"`
}

// IsPublished reports whether the question is visible at the given
// instant. A question is published iff its pub_date is at or before now.
func (q *Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// WasPublishedRecently reports whether the question was published within
// the 24 hours ending at now. The window is half-open: a pub_date of
// exactly now counts, a pub_date of exactly now-24h does not. Future
// pub_dates are never recent.
func (q *Question) WasPublishedRecently(now time.Time) bool {
	return q.PubDate.After(now.Add(-RecencyWindow)) && !q.PubDate.After(now)
}
