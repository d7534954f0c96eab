package simplify

import (
	"context"
	"strings"

	"curio-be/pkg/rewriter"
)

// RefusalPhrase is returned verbatim when the input is too short to carry
// enough information for a faithful rewrite.
const RefusalPhrase = "Not enough info to simplify."

const (
	// Texts shorter than this (after trim) skip the remote call entirely;
	// the endpoint would refuse them anyway.
	minRewriteLength = 40
	// Upper input bound. Longer texts never reach the network tiers.
	maxInputLength = 20000
)

// rewriteInstruction is the fixed system instruction sent ahead of the user
// text on the primary tier.
const rewriteInstruction = "Rewrite the following text so a young child can understand it. " +
	"Do not invent facts. If the text is too short or unclear to simplify, " +
	"reply exactly: " + RefusalPhrase

// SimpleSource looks up a summary on the simplified-language encyclopedia.
// It returns "" when nothing was found.
type SimpleSource interface {
	SimpleSummary(ctx context.Context, query string) string
}

// attempt is one tier of the chain. ok is false when the tier failed or
// produced empty output and the next tier should fire.
type attempt func(ctx context.Context, text, titleHint string) (result string, ok bool)

// Chain rewrites text through an ordered list of tiers (remote rewriter,
// simple-encyclopedia lookup, local heuristic) and always produces a
// non-empty result. Tiers never partial-merge; the first success wins.
type Chain struct {
	attempts []attempt
}

func NewChain(rw rewriter.Rewriter, source SimpleSource) *Chain {
	c := &Chain{}
	c.attempts = []attempt{
		c.remoteAttempt(rw),
		c.lookupAttempt(source),
		c.heuristicAttempt(),
	}
	return c
}

// Simplify runs the chain. It never returns an error or an empty string.
func (c *Chain) Simplify(ctx context.Context, text, titleHint string) string {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minRewriteLength {
		return RefusalPhrase
	}

	start := 0
	if len(trimmed) > maxInputLength {
		// Out-of-bounds input is rejected before any network call; only the
		// offline tier may handle it.
		start = len(c.attempts) - 1
	}

	for _, try := range c.attempts[start:] {
		if result, ok := try(ctx, trimmed, titleHint); ok {
			return result
		}
	}
	return RefusalPhrase
}

func (c *Chain) remoteAttempt(rw rewriter.Rewriter) attempt {
	return func(ctx context.Context, text, _ string) (string, bool) {
		if rw == nil {
			return "", false
		}
		result, err := rw.Rewrite(ctx, rewriteInstruction+"\n\n"+text)
		if err != nil {
			return "", false
		}
		result = strings.TrimSpace(result)
		return result, result != ""
	}
}

func (c *Chain) lookupAttempt(source SimpleSource) attempt {
	return func(ctx context.Context, text, titleHint string) (string, bool) {
		if source == nil {
			return "", false
		}
		query := strings.TrimSpace(titleHint)
		if query == "" {
			query = topicOf(text)
		}
		if query == "" {
			return "", false
		}
		result := strings.TrimSpace(source.SimpleSummary(ctx, query))
		return result, result != ""
	}
}

func (c *Chain) heuristicAttempt() attempt {
	return func(_ context.Context, text, _ string) (string, bool) {
		result := Heuristic(text)
		return result, result != ""
	}
}

// topicOf guesses a lookup topic from raw text: the first handful of words
// of the first sentence.
func topicOf(text string) string {
	if idx := strings.IndexAny(text, ".!?\n"); idx > 0 {
		text = text[:idx]
	}
	words := strings.Fields(text)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}
