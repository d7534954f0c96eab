// FILE: internal/service/session_service.go
// Root controller of the search session: owns all SessionState mutation,
// drives the navigation machine, and triggers aggregation and enrichment.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"curio-be/internal/dto"
	"curio-be/internal/pkg/logger"
	"curio-be/internal/repository/memory"
	"curio-be/pkg/aggregate"
	"curio-be/pkg/enrich"
	"curio-be/pkg/nav"
	"curio-be/pkg/simplify"
	"curio-be/pkg/store"
	"curio-be/pkg/wiki"

	"github.com/google/uuid"
)

// aggregationFailedMessage replaces the overview panel when the aggregator
// itself fails, as opposed to sources merely finding nothing.
const aggregationFailedMessage = "Something went wrong while searching. Please try again."

type ISessionService interface {
	Start(ctx context.Context, initialQuery string) (*dto.SessionStateResponse, error)
	GetState(sessionID string) (*dto.SessionStateResponse, error)
	Submit(ctx context.Context, sessionID, query string) (*dto.SessionStateResponse, error)
	Suggest(ctx context.Context, term string, max int) []string
	OpenQuestion(ctx context.Context, sessionID string, index int) (*dto.SessionStateResponse, error)
	CloseQuestion(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	Popstate(ctx context.Context, sessionID string, entryIndex int) (*dto.SessionStateResponse, error)
	KeyPress(ctx context.Context, sessionID, key string) (*dto.KeyPressResponse, error)
	Simplify(ctx context.Context, text, titleHint string) string

	// EnrichLeading is the prefetch entry point used by the consumer.
	EnrichLeading(ctx context.Context, sessionID string, token uint64, count int)
}

type sessionService struct {
	repo          *memory.SessionRepository
	wikiClient    *wiki.Client
	aggregator    *aggregate.Aggregator
	resolver      *enrich.Resolver
	chain         *simplify.Chain
	publisher     IPublisherService
	sysLogger     logger.ILogger
	prefetchCount int

	// One mutex per live session; the Go stand-in for "all mutations happen
	// on the event loop".
	locks sync.Map
}

func NewSessionService(
	repo *memory.SessionRepository,
	wikiClient *wiki.Client,
	aggregator *aggregate.Aggregator,
	resolver *enrich.Resolver,
	chain *simplify.Chain,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	prefetchCount int,
) ISessionService {
	return &sessionService{
		repo:          repo,
		wikiClient:    wikiClient,
		aggregator:    aggregator,
		resolver:      resolver,
		chain:         chain,
		publisher:     publisher,
		sysLogger:     sysLogger,
		prefetchCount: prefetchCount,
	}
}

func (s *sessionService) lock(sessionID string) *sync.Mutex {
	m, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu
}

// Start creates a session. A query parsed from the URL initializes directly
// into the results view, replacing (not pushing) the initial history entry.
func (s *sessionService) Start(ctx context.Context, initialQuery string) (*dto.SessionStateResponse, error) {
	sess := &store.Session{
		ID:               uuid.NewString(),
		View:             store.ViewHome,
		SelectedQuestion: -1,
		Questions:        []*store.Question{},
		HistoryIndex:     -1,
	}

	state := navState(sess)
	next, effect := nav.Transition(state, nav.Event{Kind: nav.EventInitialLoad, Query: initialQuery})
	s.applyTransition(sess, next, effect)
	s.repo.Save(sess)

	if effect.Aggregate {
		s.runAggregation(ctx, sess.ID, next.Query, sess.RunToken)
	}

	mu := s.lock(sess.ID)
	defer mu.Unlock()
	sess, _ = s.repo.Get(sess.ID)
	return snapshot(sess), nil
}

func (s *sessionService) GetState(sessionID string) (*dto.SessionStateResponse, error) {
	mu := s.lock(sessionID)
	defer mu.Unlock()

	sess, ok := s.repo.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return snapshot(sess), nil
}

// Submit runs a new search from either view.
func (s *sessionService) Submit(ctx context.Context, sessionID, query string) (*dto.SessionStateResponse, error) {
	mu := s.lock(sessionID)
	sess, ok := s.repo.Get(sessionID)
	if !ok {
		mu.Unlock()
		return nil, fmt.Errorf("session not found")
	}

	next, effect := nav.Transition(navState(sess), nav.Event{Kind: nav.EventSubmit, Query: query})
	s.applyTransition(sess, next, effect)
	token := sess.RunToken
	s.repo.Save(sess)
	mu.Unlock()

	if effect.Aggregate {
		s.runAggregation(ctx, sessionID, next.Query, token)
	}
	return s.GetState(sessionID)
}

// Suggest serves autocomplete; it is session-free and fails soft.
func (s *sessionService) Suggest(ctx context.Context, term string, max int) []string {
	return s.wikiClient.TitleSuggestions(ctx, term, max)
}

// OpenQuestion resolves a question's answer and media on demand and opens
// its modal.
func (s *sessionService) OpenQuestion(ctx context.Context, sessionID string, index int) (*dto.SessionStateResponse, error) {
	mu := s.lock(sessionID)
	sess, ok := s.repo.Get(sessionID)
	if !ok {
		mu.Unlock()
		return nil, fmt.Errorf("session not found")
	}
	if index < 0 || index >= len(sess.Questions) {
		mu.Unlock()
		return nil, fmt.Errorf("question index out of range")
	}

	next, effect := nav.Transition(navState(sess), nav.Event{Kind: nav.EventOpen})
	if !effect.Enrich {
		defer mu.Unlock()
		return snapshot(sess), nil
	}
	s.applyTransition(sess, next, effect)
	sess.SelectedQuestion = index
	token := sess.RunToken
	clone := *sess.Questions[index]
	s.repo.Save(sess)
	mu.Unlock()

	// Network work happens on the copy; the live question is only written
	// under the lock, once, and only while the same run is still current.
	media := s.resolver.Resolve(ctx, &clone)

	mu = s.lock(sessionID)
	defer mu.Unlock()
	sess, ok = s.repo.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	if sess.RunToken == token && index < len(sess.Questions) {
		commitEnrichment(sess.Questions[index], &clone)
		if sess.SelectedQuestion == index {
			sess.SelectedMedia = media
		}
		s.repo.Save(sess)
	}
	return snapshot(sess), nil
}

// CloseQuestion closes the modal by navigating back over the transient
// modal entry, so the close control and the browser back button land on the
// same history depth.
func (s *sessionService) CloseQuestion(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	mu := s.lock(sessionID)
	defer mu.Unlock()

	sess, ok := s.repo.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session not found")
	}

	_, effect := nav.Transition(navState(sess), nav.Event{Kind: nav.EventClose})
	if effect.History != nav.HistoryBack {
		return snapshot(sess), nil
	}
	s.goBack(sess)
	s.repo.Save(sess)
	return snapshot(sess), nil
}

// Popstate reconciles state after browser back/forward restored the entry
// at entryIndex.
func (s *sessionService) Popstate(ctx context.Context, sessionID string, entryIndex int) (*dto.SessionStateResponse, error) {
	mu := s.lock(sessionID)
	sess, ok := s.repo.Get(sessionID)
	if !ok {
		mu.Unlock()
		return nil, fmt.Errorf("session not found")
	}

	stack := nav.Load(sess.History, sess.HistoryIndex)
	entry, ok := stack.Go(entryIndex)
	if !ok {
		defer mu.Unlock()
		return snapshot(sess), nil
	}
	sess.History, sess.HistoryIndex = stack.Entries(), stack.Index()

	next, effect := nav.Transition(navState(sess), nav.Event{Kind: nav.EventPopstate, Entry: &entry})
	s.applyTransition(sess, next, effect)
	token := sess.RunToken
	s.repo.Save(sess)
	mu.Unlock()

	if effect.Aggregate {
		s.runAggregation(ctx, sessionID, next.Query, token)
	}
	return s.GetState(sessionID)
}

// KeyPress handles the global shortcuts: "/" focuses the active search
// input, "Escape" closes an open modal or clears the query field.
func (s *sessionService) KeyPress(ctx context.Context, sessionID, key string) (*dto.KeyPressResponse, error) {
	mu := s.lock(sessionID)
	sess, ok := s.repo.Get(sessionID)
	if !ok {
		mu.Unlock()
		return nil, fmt.Errorf("session not found")
	}

	resp := &dto.KeyPressResponse{}
	switch key {
	case "/":
		resp.FocusTarget = nav.FocusTarget(navState(sess))
	case "Escape":
		_, effect := nav.Transition(navState(sess), nav.Event{Kind: nav.EventEscape})
		if effect.History == nav.HistoryBack {
			s.goBack(sess)
			s.repo.Save(sess)
		}
		resp.ClearQuery = effect.ClearQuery
	}
	resp.State = snapshot(sess)
	mu.Unlock()
	return resp, nil
}

// Simplify rewrites text through the fallback chain; it always yields a
// non-empty result.
func (s *sessionService) Simplify(ctx context.Context, text, titleHint string) string {
	return s.chain.Simplify(ctx, text, titleHint)
}

// EnrichLeading warms the answers of the first count questions so the first
// card opens instantly. Stale tokens make it a no-op.
func (s *sessionService) EnrichLeading(ctx context.Context, sessionID string, token uint64, count int) {
	for i := 0; i < count; i++ {
		mu := s.lock(sessionID)
		sess, ok := s.repo.Get(sessionID)
		if !ok || sess.RunToken != token || i >= len(sess.Questions) {
			mu.Unlock()
			return
		}
		if sess.Questions[i].Enriched() {
			mu.Unlock()
			continue
		}
		clone := *sess.Questions[i]
		mu.Unlock()

		s.resolver.Resolve(ctx, &clone)

		mu = s.lock(sessionID)
		sess, ok = s.repo.Get(sessionID)
		if ok && sess.RunToken == token && i < len(sess.Questions) {
			commitEnrichment(sess.Questions[i], &clone)
			s.repo.Save(sess)
		}
		mu.Unlock()
	}
}

// --- Aggregation ---

// runAggregation executes one run and commits it only while its token is
// still current, so a stale run can never overwrite a fresher query.
func (s *sessionService) runAggregation(ctx context.Context, sessionID, query string, token uint64) {
	result := s.aggregator.Run(ctx, query, token)

	mu := s.lock(sessionID)
	sess, ok := s.repo.Get(sessionID)
	if !ok || sess.RunToken != result.Token {
		mu.Unlock()
		s.sysLogger.Debug("SESSION", "Discarded stale aggregation run", map[string]interface{}{
			"session_id": sessionID,
			"query":      query,
		})
		return
	}

	if result.Err != nil {
		sess.ErrorMessage = aggregationFailedMessage
		s.sysLogger.Error("SESSION", "Aggregation failed", map[string]interface{}{
			"session_id": sessionID,
			"query":      query,
			"error":      result.Err.Error(),
		})
	} else {
		sess.Overview = result.Overview
		sess.Questions = result.Questions
		sess.NotFound = result.NotFound
		sess.Suggestions = result.Suggestions
	}
	s.repo.Save(sess)
	mu.Unlock()

	if result.Err == nil && len(result.Questions) > 0 {
		s.publishPrefetch(ctx, sessionID, token)
	}
}

func (s *sessionService) publishPrefetch(ctx context.Context, sessionID string, token uint64) {
	if s.publisher == nil || s.prefetchCount <= 0 {
		return
	}
	payload, err := json.Marshal(dto.PrefetchQuestionsMessage{
		SessionID: sessionID,
		RunToken:  token,
		Count:     s.prefetchCount,
	})
	if err != nil {
		return
	}
	// Prefetch is auxiliary; a publish failure must not fail the search.
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.sysLogger.Warn("SESSION", "Failed to publish prefetch message", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

// --- Helpers ---

func navState(sess *store.Session) nav.State {
	return nav.State{
		View:      sess.View,
		Query:     sess.Query,
		ModalOpen: sess.SelectedQuestion >= 0,
	}
}

// applyTransition folds a machine transition into the session: view, query,
// the mirrored history stack, and a content reset when a new aggregation
// starts.
func (s *sessionService) applyTransition(sess *store.Session, next nav.State, effect nav.Effect) {
	stack := nav.Load(sess.History, sess.HistoryIndex)
	switch effect.History {
	case nav.HistoryPush:
		stack.Push(effect.Entry)
	case nav.HistoryReplace:
		stack.Replace(effect.Entry)
	}
	sess.History, sess.HistoryIndex = stack.Entries(), stack.Index()

	sess.View = next.View
	sess.Query = next.Query
	if effect.ClearSelection || !next.ModalOpen {
		sess.SelectedQuestion = -1
		sess.SelectedMedia = nil
	}

	if effect.Aggregate {
		sess.RunToken++
		resetContent(sess)
	}
}

// goBack pops one history entry and feeds the restored entry back through
// the machine, the same path a browser popstate takes.
func (s *sessionService) goBack(sess *store.Session) {
	stack := nav.Load(sess.History, sess.HistoryIndex)
	entry, ok := stack.Back()
	if !ok {
		return
	}
	sess.History, sess.HistoryIndex = stack.Entries(), stack.Index()

	next, effect := nav.Transition(navState(sess), nav.Event{Kind: nav.EventPopstate, Entry: &entry})
	s.applyTransition(sess, next, effect)
}

// resetContent clears per-topic content at the start of an aggregation run.
func resetContent(sess *store.Session) {
	sess.Overview = nil
	sess.Questions = []*store.Question{}
	sess.SelectedQuestion = -1
	sess.SelectedMedia = nil
	sess.NotFound = false
	sess.Suggestions = nil
	sess.ErrorMessage = ""
}

// commitEnrichment copies resolved fields onto the live question, once only.
func commitEnrichment(live, resolved *store.Question) {
	if live.Enriched() {
		return
	}
	live.Answer = resolved.Answer
	live.SourceURL = resolved.SourceURL
	if live.TitleGuess == "" {
		live.TitleGuess = resolved.TitleGuess
	}
}

// snapshot deep-copies everything the HTTP layer will read after the
// session lock is released. The live questions keep being mutated by the
// prefetch consumer, so handing out the live pointers would race with
// response marshalling.
func snapshot(sess *store.Session) *dto.SessionStateResponse {
	questions := make([]*store.Question, len(sess.Questions))
	for i, q := range sess.Questions {
		copied := *q
		questions[i] = &copied
	}

	var overview *store.Overview
	if sess.Overview != nil {
		o := *sess.Overview
		overview = &o
	}

	var media *store.MediaSet
	if sess.SelectedMedia != nil {
		media = &store.MediaSet{
			Images: append([]store.MediaItem(nil), sess.SelectedMedia.Images...),
			Videos: append([]store.MediaItem(nil), sess.SelectedMedia.Videos...),
		}
	}

	history := make([]store.HistoryEntry, len(sess.History))
	copy(history, sess.History)

	return &dto.SessionStateResponse{
		ID:               sess.ID,
		View:             sess.View,
		Query:            sess.Query,
		Overview:         overview,
		Questions:        questions,
		SelectedQuestion: sess.SelectedQuestion,
		SelectedMedia:    media,
		NotFound:         sess.NotFound,
		Suggestions:      append([]string(nil), sess.Suggestions...),
		ErrorMessage:     sess.ErrorMessage,
		History:          history,
		HistoryIndex:     sess.HistoryIndex,
	}
}
