package dcv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"dcv-manager/core/reconcile"

	"go.uber.org/zap"
)

// Challenge outcome sentinels. The request command writes these into the
// Name/Token columns when there is no TXT record to report, matching what
// operators already grep for in the output workbooks.
const (
	AlreadyValidated = "Already Validated"
	TokenNotFound    = "Token not found"
)

// Challenge is the outcome of requesting validation for one domain: either
// the DNS TXT record to publish, or a sentinel/error text in both fields.
type Challenge struct {
	Name  string
	Token string
}

// CreateValidation requests a validation record for the item and returns its
// DNS TXT challenge. When the record already exists (either reported in the
// response detail or via 409) the existing challenge is fetched instead.
// Failures are returned as Challenge text, never as an error: a single
// domain must not abort the batch.
func (c *Client) CreateValidation(ctx context.Context, item reconcile.Item) Challenge {
	payload := bulkPayload{Domains: []domainRef{{
		DomainName:      item.Domain,
		ValidationScope: string(item.Scope),
	}}}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(domainsPath)
	if err != nil {
		return errorChallenge("Exception: %s", err.Error())
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated, http.StatusMultiStatus:
		ch, found := findChallenge(resp.Body(), item.Domain)
		if !found {
			return Challenge{Name: TokenNotFound, Token: TokenNotFound}
		}
		if ch.exists {
			c.log.Info("domain already has a validation record, fetching its challenge",
				zap.String("domain", item.Domain),
			)
			return c.GetChallenge(ctx, item)
		}
		return ch.Challenge
	case http.StatusConflict:
		c.log.Info("domain exists (409), fetching its challenge",
			zap.String("domain", item.Domain),
		)
		return c.GetChallenge(ctx, item)
	default:
		c.log.Warn("failed to create validation request",
			zap.String("domain", item.Domain),
			zap.Int("status", resp.StatusCode()),
		)
		return errorChallenge("Error: %d", resp.StatusCode())
	}
}

// GetChallenge retrieves the existing challenge for a domain. Used as the
// fallback when creation reports the domain already exists.
func (c *Client) GetChallenge(ctx context.Context, item reconcile.Item) Challenge {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("validationScope", string(item.Scope)).
		Get(domainsPath + "/" + item.Domain)
	if err != nil {
		return errorChallenge("Exception GET: %s", err.Error())
	}
	if resp.StatusCode() != http.StatusOK {
		c.log.Warn("failed to fetch domain details",
			zap.String("domain", item.Domain),
			zap.Int("status", resp.StatusCode()),
		)
		return errorChallenge("Error GET: %d", resp.StatusCode())
	}

	var entry domainEntry
	if err := json.Unmarshal(resp.Body(), &entry); err != nil {
		return Challenge{Name: TokenNotFound, Token: TokenNotFound}
	}
	if entry.Status == statusValidated || entry.DomainStatus == statusValidated {
		return Challenge{Name: AlreadyValidated, Token: AlreadyValidated}
	}
	if entry.ValidationChallenge != nil && entry.ValidationChallenge.TxtRecord.Value != "" {
		return Challenge{
			Name:  entry.ValidationChallenge.TxtRecord.Name,
			Token: entry.ValidationChallenge.TxtRecord.Value,
		}
	}
	return Challenge{Name: TokenNotFound, Token: TokenNotFound}
}

// challengeMatch is the internal result of scanning a creation response.
type challengeMatch struct {
	Challenge
	exists bool // record already exists, challenge must be fetched via GET
}

// findChallenge searches a creation response for the entry matching domain.
// The endpoint answers in several shapes (successes/errors lists on 207, a
// bare object, occasionally a bare array), so all of them are tried in turn.
func findChallenge(body []byte, domain string) (challengeMatch, bool) {
	var wrapped createResponse
	if err := json.Unmarshal(body, &wrapped); err == nil {
		for _, entry := range wrapped.Successes {
			if m, ok := matchEntry(entry, domain); ok {
				return m, true
			}
		}
		for _, entry := range wrapped.Errors {
			if m, ok := matchEntry(entry, domain); ok {
				return m, true
			}
		}
		if m, ok := matchEntry(wrapped.domainEntry, domain); ok {
			return m, true
		}
	}

	var list []domainEntry
	if err := json.Unmarshal(body, &list); err == nil {
		for _, entry := range list {
			if m, ok := matchEntry(entry, domain); ok {
				return m, true
			}
		}
	}

	return challengeMatch{}, false
}

// matchEntry inspects one response entry for the target domain and decides
// what it means for the challenge.
func matchEntry(entry domainEntry, domain string) (challengeMatch, bool) {
	if !strings.EqualFold(entry.DomainName, domain) {
		return challengeMatch{}, false
	}

	// A record that is already validated needs no TXT challenge at all.
	if entry.Status == statusValidated || entry.DomainStatus == statusValidated {
		return challengeMatch{Challenge: Challenge{Name: AlreadyValidated, Token: AlreadyValidated}}, true
	}

	if entry.ValidationChallenge != nil && entry.ValidationChallenge.TxtRecord.Value != "" {
		return challengeMatch{Challenge: Challenge{
			Name:  entry.ValidationChallenge.TxtRecord.Name,
			Token: entry.ValidationChallenge.TxtRecord.Value,
		}}, true
	}

	if strings.Contains(entry.Detail, "Domain already exists") {
		return challengeMatch{exists: true}, true
	}

	if entry.Status == "Internal Server Error" {
		detail := entry.Detail
		if detail == "" {
			detail = "Unknown Error"
		}
		msg := fmt.Sprintf("Error: %s", detail)
		return challengeMatch{Challenge: Challenge{Name: msg, Token: msg}}, true
	}

	return challengeMatch{}, false
}

func errorChallenge(format string, args ...any) Challenge {
	msg := fmt.Sprintf(format, args...)
	return Challenge{Name: msg, Token: msg}
}
