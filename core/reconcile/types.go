package reconcile

import (
	"context"
	"strings"
)

// Scope identifies which hostnames a validation record covers.
type Scope string

const (
	// ScopeDomain validates the registered domain itself.
	ScopeDomain Scope = "DOMAIN"
	// ScopeDVSAN validates the domain as a certificate SAN entry.
	ScopeDVSAN Scope = "DV_SAN"
)

// IsValid checks if the scope is one of the known API values.
func (s Scope) IsValid() bool {
	switch s {
	case ScopeDomain, ScopeDVSAN:
		return true
	default:
		return false
	}
}

// Item is one domain-plus-scope unit of work. Immutable once created.
// Identity is the (Domain, Scope) pair; duplicate items within an input set
// are permitted and reconciled independently.
type Item struct {
	// Domain is the domain name, normalized to lowercase.
	Domain string

	// Scope is the validation scope this item targets.
	Scope Scope
}

// NewItem builds an Item with a trimmed, lowercased domain and an uppercased
// scope. An empty scope defaults to DOMAIN.
func NewItem(domain string, scope string) Item {
	s := Scope(strings.ToUpper(strings.TrimSpace(scope)))
	if s == "" {
		s = ScopeDomain
	}
	return Item{
		Domain: strings.ToLower(strings.TrimSpace(domain)),
		Scope:  s,
	}
}

// FaultDetail is the API-reported reason one specific item was rejected
// within a batch. It lives only for the duration of one reconciliation
// iteration.
type FaultDetail struct {
	// Domain is the offending identifier cited by the API.
	Domain string

	// Title is the API's error title, verbatim.
	Title string

	// Detail is the API's error detail, verbatim.
	Detail string
}

// SubmitStatus classifies the outcome of one bulk request.
type SubmitStatus int

const (
	// AllAccepted means every item in the chunk succeeded.
	AllAccepted SubmitStatus = iota

	// PartiallyRejected means the endpoint rejected the chunk as a whole and
	// the response body may identify the specific offending items.
	PartiallyRejected

	// TransportFailure means there was no interpretable response: a network
	// error, a malformed body, or a non-400-class server error. It cannot be
	// partitioned by item.
	TransportFailure
)

// SubmitResult is the structured outcome of submitting one chunk.
type SubmitResult struct {
	// Status classifies the response.
	Status SubmitStatus

	// StatusCode is the HTTP status of the response, zero when no response
	// was received.
	StatusCode int

	// Faults identifies the offending items for PartiallyRejected. An empty
	// list means the rejection could not be attributed to specific items.
	Faults []FaultDetail

	// Reason describes a TransportFailure.
	Reason string

	// Detail is a human-readable note applied to accepted items.
	Detail string

	// ItemDetail optionally overrides Detail per lowercased domain, e.g. the
	// per-domain status echoed by the validate endpoint.
	ItemDetail map[string]string
}

// Submitter sends exactly one outbound bulk request per call and classifies
// the response. Retry policy lives in the Driver, never here.
type Submitter interface {
	Submit(ctx context.Context, chunk []Item) SubmitResult
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, chunk []Item) SubmitResult

// Submit calls f.
func (f SubmitterFunc) Submit(ctx context.Context, chunk []Item) SubmitResult {
	return f(ctx, chunk)
}

// Outcome is the terminal classification of one item.
type Outcome string

const (
	// OutcomeSuccess means the operation was accepted for the item.
	OutcomeSuccess Outcome = "Success"

	// OutcomeInvalid means the API confirmed this specific item as invalid.
	OutcomeInvalid Outcome = "Invalid"

	// OutcomeFailed means the item could not be reconciled: a transport
	// failure covering its chunk, or an exhausted retry budget.
	OutcomeFailed Outcome = "Failed"
)

// ReasonRetryLimit is the Failed reason recorded when a chunk lineage runs
// out of resubmission attempts. Kept distinct from API rejection text so the
// two are distinguishable in the output.
const ReasonRetryLimit = "retry limit exceeded"

// Result is one ledger entry: an item with its terminal outcome.
type Result struct {
	// Item is the reconciled unit of work.
	Item Item

	// Outcome is the terminal classification.
	Outcome Outcome

	// StatusCode is the HTTP status of the response that decided the
	// outcome, zero when no response was received.
	StatusCode int

	// Title carries the API's error title for invalid items.
	Title string

	// Detail carries diagnostic or status text for the user.
	Detail string
}
