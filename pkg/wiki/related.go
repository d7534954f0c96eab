package wiki

import (
	"context"
	"net/url"
	"strings"

	"curio-be/pkg/store"
	"curio-be/pkg/textutil"
)

// relatedTopic is one record from the discovery endpoint. Group records
// carry no text of their own, only a nested Topics list (one level deep).
type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

// RelatedQuestions queries the related-topic endpoint for a topic and turns
// each record into an answer-less question. Duplicates (case-insensitive
// question text) are dropped and the list is capped. Failures come back as
// an empty list.
func (c *Client) RelatedQuestions(ctx context.Context, topic string, limit int) []*store.Question {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil
	}

	params := url.Values{}
	params.Add("q", topic)
	params.Add("format", "json")
	params.Add("no_html", "1")

	var result struct {
		RelatedTopics []relatedTopic `json:"RelatedTopics"`
	}
	if err := c.getJSON(ctx, c.relatedBase+"/?"+params.Encode(), &result); err != nil {
		return nil
	}

	flat := flattenTopics(result.RelatedTopics)

	questions := make([]*store.Question, 0, len(flat))
	for _, t := range flat {
		q := questionFromTopic(t)
		if q != nil {
			questions = append(questions, q)
		}
	}

	questions = textutil.DedupCaseInsensitive(questions, func(q *store.Question) string {
		return q.Question
	})
	return textutil.Truncate(questions, limit)
}

// flattenTopics expands group records into their members. Nesting is one
// level deep, so a single pass suffices.
func flattenTopics(topics []relatedTopic) []relatedTopic {
	flat := make([]relatedTopic, 0, len(topics))
	for _, t := range topics {
		if len(t.Topics) > 0 {
			flat = append(flat, t.Topics...)
			continue
		}
		flat = append(flat, t)
	}
	return flat
}

// questionFromTopic derives the question phrase and title guess from one
// topic record, or nil when the record has no usable text.
func questionFromTopic(t relatedTopic) *store.Question {
	title := textutil.SplitLeadTitle(t.Text)
	if title == "" {
		return nil
	}

	guess := textutil.TitleFromWikiURL(t.FirstURL)
	if guess == "" {
		guess = title
	}

	return &store.Question{
		Question:   textutil.QuestionPhrase(title),
		SourceURL:  t.FirstURL,
		TitleGuess: guess,
	}
}
