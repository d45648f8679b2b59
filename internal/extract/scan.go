package extract

import (
	"context"
	"log/slog"

	"github.com/clearway/teamsdb/internal/classify"
	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/normalize"
	"github.com/clearway/teamsdb/internal/raw"
	"github.com/clearway/teamsdb/internal/resolve"
	"github.com/clearway/teamsdb/internal/snapshot"
)

// conversationScan collects versioned conversation candidates by logical id.
type conversationScan struct {
	candidates map[string][]resolve.Candidate
	stats      PassStats
}

// replyChainScan collects reply-chain candidates by conversation id, plus
// the horizon markers each candidate carries.
type replyChainScan struct {
	candidates map[string][]resolve.Candidate
	horizons   map[string][]model.Instant
	stats      PassStats
}

// readMarkerScan collects horizon markers from the legacy metadata stores.
type readMarkerScan struct {
	horizons map[string][]model.Instant
	stats    PassStats
}

// profileScan collects profile candidates by user identifier.
type profileScan struct {
	candidates map[string][]resolve.Candidate
	stats      PassStats
}

// checkRecord applies the shared per-record screening: malformed values and
// domain mismatches are counted and dropped. The reply-chain marker is a
// fragment of the read-marker store names, so a scan routinely sees records
// belonging to a sibling domain; those are silently left to their own scan.
func checkRecord(rec raw.Record, decodeErr error, want classify.Domain, stats *PassStats) bool {
	switch classify.Classify(rec.Store) {
	case want:
	case classify.DomainUnclassified:
		stats.Unclassified++
		slog.Debug("skipping record",
			"code", CodeUnknownDomain,
			"store", rec.Store,
			"key", rec.Key,
		)
		return false
	default:
		// Sibling domain; its own scan owns the record.
		return false
	}
	if decodeErr != nil {
		stats.Malformed++
		slog.Debug("skipping record",
			"code", CodeMalformedRecord,
			"store", rec.Store,
			"key", rec.Key,
			"error", decodeErr,
		)
		return false
	}
	return true
}

func scanConversations(ctx context.Context, src snapshot.Source) (*conversationScan, error) {
	s := &conversationScan{candidates: make(map[string][]resolve.Candidate)}
	err := src.Iterate(ctx, classify.MarkerConversation, func(rec raw.Record, decodeErr error) error {
		if !checkRecord(rec, decodeErr, classify.DomainConversation, &s.stats) {
			return nil
		}
		s.stats.ConversationRecords++
		id, _ := rec.Fields.StringField("id")
		if id == "" {
			s.stats.MissingID++
			return nil
		}
		s.candidates[id] = append(s.candidates[id], resolve.NewCandidate(rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanReplyChains(ctx context.Context, src snapshot.Source) (*replyChainScan, error) {
	s := &replyChainScan{
		candidates: make(map[string][]resolve.Candidate),
		horizons:   make(map[string][]model.Instant),
	}
	err := src.Iterate(ctx, classify.MarkerReplyChain, func(rec raw.Record, decodeErr error) error {
		if !checkRecord(rec, decodeErr, classify.DomainReplyChain, &s.stats) {
			return nil
		}
		s.stats.ReplyChainRecords++
		id, _ := rec.Fields.StringField("conversationId")
		if id == "" {
			s.stats.MissingID++
			return nil
		}
		s.candidates[id] = append(s.candidates[id], resolve.NewCandidate(rec))

		// Every source copy may carry its own horizon; all are candidate
		// read-markers regardless of which copy wins resolution.
		if h := normalize.HorizonField(rec.Fields, "consumptionHorizon"); h.Known() {
			s.horizons[id] = append(s.horizons[id], h)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanReadMarkers(ctx context.Context, src snapshot.Source) (*readMarkerScan, error) {
	s := &readMarkerScan{horizons: make(map[string][]model.Instant)}
	err := src.Iterate(ctx, classify.MarkerReadMarker, func(rec raw.Record, decodeErr error) error {
		if !checkRecord(rec, decodeErr, classify.DomainReadMarker, &s.stats) {
			return nil
		}
		s.stats.ReadMarkerRecords++
		id, _ := rec.Fields.StringField("conversationId")
		if id == "" {
			s.stats.MissingID++
			return nil
		}
		if h := normalize.HorizonField(rec.Fields, "consumptionHorizon"); h.Known() {
			s.horizons[id] = append(s.horizons[id], h)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func scanProfiles(ctx context.Context, src snapshot.Source) (*profileScan, error) {
	s := &profileScan{candidates: make(map[string][]resolve.Candidate)}
	err := src.Iterate(ctx, classify.MarkerProfile, func(rec raw.Record, decodeErr error) error {
		if !checkRecord(rec, decodeErr, classify.DomainProfile, &s.stats) {
			return nil
		}
		s.stats.ProfileRecords++
		mri, _ := rec.Fields.StringField("mri")
		if mri == "" {
			mri = rec.Key
		}
		if mri == "" {
			s.stats.MissingID++
			return nil
		}
		s.candidates[mri] = append(s.candidates[mri], resolve.NewCandidate(rec))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
