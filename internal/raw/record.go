package raw

// Record is one raw copy of a logical record as read from a snapshot of the
// persistence layer. Records are ephemeral: they exist only within a single
// extraction pass and are never written back.
type Record struct {
	// Store is the full store name the record was read from. Store names
	// embed volatile locale/user/client suffixes, so they are matched by
	// substring, never by equality.
	Store string

	// Key is the record's key within its store.
	Key string

	// SourceTag identifies which redundant source copy this record came
	// from. Multiple records may share a logical identifier across tags.
	SourceTag string

	// Fields is the record's decoded value. Nil when the value could not
	// be decoded; such records are counted as malformed and skipped.
	Fields Map
}
