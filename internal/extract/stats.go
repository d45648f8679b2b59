package extract

// PassStats counts what one extraction pass saw. Per-record problems are
// counted here and skipped, never raised: one malformed record must not
// abort extraction of the rest of the snapshot.
type PassStats struct {
	ConversationRecords int
	ReplyChainRecords   int
	ReadMarkerRecords   int
	ProfileRecords      int

	// Malformed counts records whose value failed to parse.
	Malformed int

	// Unclassified counts records whose store matched no domain marker.
	Unclassified int

	// MissingID counts records that parsed but carried no logical
	// identifier to group on.
	MissingID int
}

func (s *PassStats) add(other PassStats) {
	s.ConversationRecords += other.ConversationRecords
	s.ReplyChainRecords += other.ReplyChainRecords
	s.ReadMarkerRecords += other.ReadMarkerRecords
	s.ProfileRecords += other.ProfileRecords
	s.Malformed += other.Malformed
	s.Unclassified += other.Unclassified
	s.MissingID += other.MissingID
}
