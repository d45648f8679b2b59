package extract

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/rules"
	"github.com/clearway/teamsdb/internal/snapshot"
)

// Extractor turns a raw snapshot into resolved conversations. It holds no
// cross-run state: every Extract call is a pure function of the snapshot,
// and two concurrent extractors over two snapshots share nothing mutable.
type Extractor struct {
	src    snapshot.Source
	rules  rules.Rules
	tokens TokenGenerator
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRules replaces the default aggregation filter rules.
func WithRules(r rules.Rules) Option {
	return func(e *Extractor) {
		e.rules = r
	}
}

// WithTokenGenerator replaces the pass-token generator. Tests use
// NewFixedGenerator for deterministic logs.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Extractor) {
		e.tokens = g
	}
}

// New creates an Extractor over src.
func New(src snapshot.Source, opts ...Option) *Extractor {
	e := &Extractor{
		src:    src,
		rules:  rules.Default(),
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs one pass over the snapshot and returns the resolved
// conversations, sorted by last message time descending. On a structural
// snapshot failure no partial result is returned.
func (e *Extractor) Extract(ctx context.Context) ([]model.Conversation, error) {
	pass := e.tokens.Generate()

	scans, err := e.scanAll(ctx)
	if err != nil {
		return nil, &Error{
			Code:    CodeSnapshotUnavailable,
			Message: "scanning snapshot",
			Err:     err,
		}
	}

	convs, err := assemble(scans, e.rules)
	if err != nil {
		return nil, err
	}

	stats := scans.stats()
	slog.Info("extraction pass complete",
		"pass", pass,
		"conversations", len(convs),
		"conversation_records", stats.ConversationRecords,
		"replychain_records", stats.ReplyChainRecords,
		"readmarker_records", stats.ReadMarkerRecords,
		"profile_records", stats.ProfileRecords,
		"malformed", stats.Malformed,
		"unclassified", stats.Unclassified,
		"missing_id", stats.MissingID,
	)
	return convs, nil
}

// UnreadOnly runs Extract and filters to conversations with unread content.
func (e *Extractor) UnreadOnly(ctx context.Context) ([]model.Conversation, error) {
	convs, err := e.Extract(ctx)
	if err != nil {
		return nil, err
	}
	unread := convs[:0:0]
	for _, c := range convs {
		if c.HasUnread() {
			unread = append(unread, c)
		}
	}
	return unread, nil
}

// passScans holds the joined results of the four parallel domain scans.
type passScans struct {
	conversations *conversationScan
	replyChains   *replyChainScan
	readMarkers   *readMarkerScan
	profiles      *profileScan
}

func (p *passScans) stats() PassStats {
	var s PassStats
	s.add(p.conversations.stats)
	s.add(p.replyChains.stats)
	s.add(p.readMarkers.stats)
	s.add(p.profiles.stats)
	return s
}

// scanAll runs the four domain scans in parallel and joins them. The scans
// are read-only over an immutable snapshot and share no mutable state;
// assembly needs fully-resolved cross-domain data, so nothing downstream
// starts until every scan has finished.
func (e *Extractor) scanAll(ctx context.Context) (*passScans, error) {
	var (
		wg    sync.WaitGroup
		scans passScans
		errs  [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		scans.conversations, errs[0] = scanConversations(ctx, e.src)
	}()
	go func() {
		defer wg.Done()
		scans.replyChains, errs[1] = scanReplyChains(ctx, e.src)
	}()
	go func() {
		defer wg.Done()
		scans.readMarkers, errs[2] = scanReadMarkers(ctx, e.src)
	}()
	go func() {
		defer wg.Done()
		scans.profiles, errs[3] = scanProfiles(ctx, e.src)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("domain scan: %w", err)
		}
	}
	return &scans, nil
}
