package enrich

import (
	"context"
	"strings"

	"curio-be/pkg/store"
	"curio-be/pkg/textutil"
	"curio-be/pkg/wiki"
)

// NoSummaryFallback fills the answer when no source could resolve one.
const NoSummaryFallback = "No concise summary found."

// Source is the slice of the encyclopedia client the resolver needs.
type Source interface {
	SummaryBySearch(ctx context.Context, source wiki.Source, query string) *wiki.Summary
	Media(ctx context.Context, title string, max int) *store.MediaSet
}

// Resolver populates a question's answer, source URL and media on demand.
// A question is mutated at most once: re-resolving an enriched question only
// re-fetches its media.
type Resolver struct {
	source   Source
	mediaCap int
}

func New(source Source, mediaCap int) *Resolver {
	return &Resolver{source: source, mediaCap: mediaCap}
}

// Resolve enriches the question in place and returns its classified media.
// It is failure-opaque: the caller always gets a usable result.
func (r *Resolver) Resolve(ctx context.Context, q *store.Question) *store.MediaSet {
	canonicalTitle := q.TitleGuess

	if !q.Enriched() {
		summary := r.lookupSummary(ctx, q)
		if summary != nil {
			q.Answer = summary.Text
			q.SourceURL = summary.URL
			if q.TitleGuess == "" {
				q.TitleGuess = summary.Title
			}
			// Prefer the resolved canonical title over the original key.
			canonicalTitle = summary.Title
		} else {
			q.Answer = NoSummaryFallback
		}
	}

	if canonicalTitle == "" {
		canonicalTitle = textutil.StripQuestionPhrase(q.Question)
	}

	// Media depends on the resolved canonical title, so it runs after text
	// resolution, not alongside it.
	return r.source.Media(ctx, canonicalTitle, r.mediaCap)
}

// lookupSummary tries the title guess first (falling back to the question
// stripped of its phrasing), then the raw question text.
func (r *Resolver) lookupSummary(ctx context.Context, q *store.Question) *wiki.Summary {
	primaryKey := q.TitleGuess
	if strings.TrimSpace(primaryKey) == "" {
		primaryKey = textutil.StripQuestionPhrase(q.Question)
	}

	if summary := r.source.SummaryBySearch(ctx, wiki.SourceCanonical, primaryKey); summary != nil {
		return summary
	}
	return r.source.SummaryBySearch(ctx, wiki.SourceCanonical, q.Question)
}
