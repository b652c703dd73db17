// Package reconcile converges a bulk API operation to per-item terminal
// outcomes.
//
// The remote validation API accepts batches of domains but rejects a whole
// batch when any single member is invalid. This package owns the retry loop
// that turns that all-or-nothing contract into per-domain results:
//
//  1. Split the input into fixed-size chunks (order preserving).
//  2. Submit a chunk through a Submitter, which classifies the raw response
//     into AllAccepted, PartiallyRejected (with per-item faults), or
//     TransportFailure.
//  3. On rejection, partition the chunk: items named by a fault are recorded
//     as invalid with the API's own title/detail text; the unnamed rest were
//     innocent bystanders and are re-queued as a new, smaller chunk.
//  4. Bound resubmission per chunk lineage so an unparsable rejection can
//     never loop forever.
//
// The Driver owns the only mutable state, an append-only ledger mapping every
// input item to exactly one outcome. Snapshot returns a consistent copy of
// the ledger at any moment, which is what makes save-on-interruption safe:
// an interrupt handler reads the snapshot while the run winds down, and never
// observes a half-written outcome.
//
// Processing is strictly sequential. One request is in flight at a time
// because a resubmitted chunk must not race the discovery of which items
// caused the previous rejection. An optional Pacer inserts a pause between
// successive requests.
package reconcile
