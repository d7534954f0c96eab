// FILE: internal/service/simplify_source.go
package service

import (
	"context"

	"curio-be/pkg/simplify"
	"curio-be/pkg/wiki"
)

// simpleWikiSource adapts the wiki client's Simple English edition into the
// simplifier chain's lookup tier.
type simpleWikiSource struct {
	client *wiki.Client
}

func NewSimpleWikiSource(client *wiki.Client) simplify.SimpleSource {
	return &simpleWikiSource{client: client}
}

func (s *simpleWikiSource) SimpleSummary(ctx context.Context, query string) string {
	summary := s.client.SummaryBySearch(ctx, wiki.SourceSimple, query)
	if summary == nil {
		return ""
	}
	return summary.Text
}
