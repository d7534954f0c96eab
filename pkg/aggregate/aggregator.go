package aggregate

import (
	"context"
	"strings"
	"sync"

	"curio-be/pkg/store"
	"curio-be/pkg/textutil"
	"curio-be/pkg/wiki"
)

// Source is the slice of the encyclopedia client the aggregator needs.
type Source interface {
	SummaryBySearch(ctx context.Context, source wiki.Source, query string) *wiki.Summary
	RelatedQuestions(ctx context.Context, topic string, limit int) []*store.Question
	TitleSuggestions(ctx context.Context, term string, max int) []string
}

// Result is one finished aggregation run. Token is echoed back so the
// committer can discard stale runs.
type Result struct {
	Overview    *store.Overview
	Questions   []*store.Question
	NotFound    bool
	Suggestions []string
	Err         error
	Token       uint64
}

// Aggregator merges the overview fetch, question discovery and suggestion
// backfill for one topic into a Result.
type Aggregator struct {
	source      Source
	questionCap int
	chipCap     int
}

func New(source Source, questionCap, chipCap int) *Aggregator {
	return &Aggregator{
		source:      source,
		questionCap: questionCap,
		chipCap:     chipCap,
	}
}

// Run aggregates content for a topic. The overview and discovery fetches
// race, but both settle before backfill. Run never panics its caller: an
// orchestration-level failure comes back in Result.Err.
func (a *Aggregator) Run(ctx context.Context, topic string, token uint64) *Result {
	result := &Result{Token: token, Questions: []*store.Question{}}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		result.NotFound = true
		return result
	}

	// 1. Overview and related questions, concurrently.
	var summary *wiki.Summary
	var questions []*store.Question
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		summary = a.source.SummaryBySearch(ctx, wiki.SourceCanonical, topic)
	}()
	go func() {
		defer wg.Done()
		questions = a.source.RelatedQuestions(ctx, topic, a.questionCap)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if summary != nil {
		result.Overview = &store.Overview{Text: summary.Text, Title: summary.Title}
	}

	// 2. Backfill a short list from title suggestions.
	if len(questions) < a.questionCap {
		questions = a.backfill(ctx, topic, questions)
	}

	// 3. Enforce the cap and the dedup invariant across merged sources.
	questions = textutil.DedupCaseInsensitive(questions, func(q *store.Question) string {
		return q.Question
	})
	result.Questions = textutil.Truncate(questions, a.questionCap)

	// 4. Not-found state plus "did you mean" chips.
	overviewEmpty := result.Overview == nil || strings.TrimSpace(result.Overview.Text) == ""
	if overviewEmpty && len(result.Questions) == 0 {
		result.NotFound = true
		result.Suggestions = a.source.TitleSuggestions(ctx, topic, a.chipCap)
	}

	return result
}

// backfill appends answer-less questions derived from title suggestions,
// skipping any title already present as a question's title guess.
func (a *Aggregator) backfill(ctx context.Context, topic string, questions []*store.Question) []*store.Question {
	suggestions := a.source.TitleSuggestions(ctx, topic, a.questionCap*2)
	if len(suggestions) == 0 {
		return questions
	}

	existing := make(map[string]bool, len(questions))
	for _, q := range questions {
		existing[strings.ToLower(q.TitleGuess)] = true
	}

	for _, title := range suggestions {
		if len(questions) >= a.questionCap {
			break
		}
		key := strings.ToLower(strings.TrimSpace(title))
		if key == "" || existing[key] {
			continue
		}
		existing[key] = true
		questions = append(questions, &store.Question{
			Question:   textutil.QuestionPhrase(title),
			TitleGuess: title,
		})
	}
	return questions
}
