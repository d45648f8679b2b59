// Package extract implements the conversation-state reconstruction
// pipeline.
//
// One Extract call is one pass over an immutable snapshot:
//
//  1. Four domain scans (conversations, reply chains, read markers,
//     profiles) run in parallel. Each classifies records by store name,
//     decodes them, and groups versioned candidates by logical id. The
//     scans are read-only and share no mutable state.
//  2. A join barrier: assembly needs fully-resolved cross-domain data, so
//     it starts only after every scan has finished.
//  3. Per conversation: resolve the authoritative candidate, normalize its
//     fields, resolve and order its reply chain, classify unread state
//     against the combined read-markers, and enrich senders from the
//     profile directory.
//  4. Aggregate: drop system/meeting threads per the filter rules and sort
//     newest first.
//
// DETERMINISM: resolution is a strict total order, map iteration goes
// through sorted keys, message and conversation ordering break ties on id,
// and unknown timestamps stay an explicit sentinel rather than defaulting
// to the current time. Running the pipeline twice over the same snapshot
// yields byte-identical serialized output.
//
// ERROR ISOLATION: malformed and unclassifiable records are counted and
// skipped, never fatal. Only structural snapshot failures abort a pass,
// and those return no partial result.
package extract
