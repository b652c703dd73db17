package dcv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"dcv-manager/core/reconcile"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// fieldIndexPattern extracts the payload position from a 400-body field
// pointer like "domains[2].domainName".
var fieldIndexPattern = regexp.MustCompile(`domains\[(\d+)\]`)

// SubmitDelete sends one bulk delete request for the chunk and classifies
// the response. It implements reconcile.Submitter via reconcile.SubmitterFunc.
func (c *Client) SubmitDelete(ctx context.Context, chunk []reconcile.Item) reconcile.SubmitResult {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(deletePayload(chunk)).
		Delete(domainsPath)
	if err != nil {
		return transportFailure(err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return reconcile.SubmitResult{
			Status:     reconcile.AllAccepted,
			StatusCode: resp.StatusCode(),
			Detail:     "Deleted successfully",
		}
	case http.StatusMultiStatus:
		// The v1 endpoint rarely answers 207; keep the body verbatim so the
		// operator can inspect the per-item statuses.
		return reconcile.SubmitResult{
			Status:     reconcile.AllAccepted,
			StatusCode: resp.StatusCode(),
			Detail:     "Multi-Status: " + strings.TrimSpace(string(resp.Body())),
		}
	case http.StatusBadRequest:
		return c.classifyRejection(chunk, resp)
	default:
		return statusFailure(resp)
	}
}

// SubmitValidate sends one bulk validate-now request for the chunk and
// classifies the response. It implements reconcile.Submitter via
// reconcile.SubmitterFunc.
func (c *Client) SubmitValidate(ctx context.Context, chunk []reconcile.Item) reconcile.SubmitResult {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(validatePayload(chunk)).
		Post(validatePath)
	if err != nil {
		return transportFailure(err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusAccepted:
		return c.acceptedValidation(chunk, resp)
	case http.StatusBadRequest:
		return c.classifyRejection(chunk, resp)
	default:
		return statusFailure(resp)
	}
}

func deletePayload(chunk []reconcile.Item) bulkPayload {
	payload := bulkPayload{Domains: make([]domainRef, 0, len(chunk))}
	for _, item := range chunk {
		payload.Domains = append(payload.Domains, domainRef{
			DomainName:      item.Domain,
			ValidationScope: string(item.Scope),
		})
	}
	return payload
}

func validatePayload(chunk []reconcile.Item) bulkPayload {
	payload := bulkPayload{Domains: make([]domainRef, 0, len(chunk))}
	for _, item := range chunk {
		payload.Domains = append(payload.Domains, domainRef{
			DomainName:       item.Domain,
			ValidationScope:  string(item.Scope),
			ValidationMethod: "DNS_TXT",
		})
	}
	return payload
}

// acceptedValidation maps the per-domain statuses echoed by validate-now
// onto the chunk. A body that fails to parse does not demote the acceptance.
func (c *Client) acceptedValidation(chunk []reconcile.Item, resp *resty.Response) reconcile.SubmitResult {
	result := reconcile.SubmitResult{
		Status:     reconcile.AllAccepted,
		StatusCode: resp.StatusCode(),
		Detail:     "Submitted",
	}

	var body validateResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Warn("failed to parse accepted validate-now response",
			zap.Int("status", resp.StatusCode()),
			zap.Error(err),
		)
		result.Detail = "Request accepted (response parsing failed)"
		return result
	}

	details := make(map[string]string, len(body.Domains))
	for _, d := range body.Domains {
		if d.DomainName == "" {
			continue
		}
		status := d.DomainStatus
		if status == "" {
			status = "Submitted"
		}
		details[strings.ToLower(d.DomainName)] = "Status: " + status
	}
	if len(details) > 0 {
		result.ItemDetail = details
	}
	return result
}

// classifyRejection decodes a 400 body into per-item faults. Field pointers
// cite payload positions; positions that parse and fall inside the chunk are
// translated to the offending domain, anything else is dropped with a log
// line. An empty or unparsable errors list yields a rejection with no faults,
// which the driver retries once before failing the chunk.
func (c *Client) classifyRejection(chunk []reconcile.Item, resp *resty.Response) reconcile.SubmitResult {
	result := reconcile.SubmitResult{
		Status:     reconcile.PartiallyRejected,
		StatusCode: resp.StatusCode(),
	}

	var problem apiProblem
	if err := json.Unmarshal(resp.Body(), &problem); err != nil {
		c.log.Warn("failed to parse rejection body",
			zap.Int("status", resp.StatusCode()),
			zap.Error(err),
		)
		return result
	}

	for _, e := range problem.Errors {
		idx, ok := fieldIndex(e.Field)
		if !ok {
			c.log.Warn("rejection error without a usable field pointer",
				zap.String("field", e.Field),
				zap.String("title", e.Title),
			)
			continue
		}
		if idx >= len(chunk) {
			c.log.Warn("rejection error cites an out-of-range payload position",
				zap.String("field", e.Field),
				zap.Int("chunk_size", len(chunk)),
			)
			continue
		}

		title := e.Title
		if title == "" {
			title = "Invalid Request"
		}
		detail := e.Detail
		if detail == "" {
			detail = problem.Detail
		}
		result.Faults = append(result.Faults, reconcile.FaultDetail{
			Domain: chunk[idx].Domain,
			Title:  title,
			Detail: detail,
		})
	}

	if len(result.Faults) == 0 {
		c.log.Warn("rejection could not be attributed to specific domains",
			zap.String("title", problem.Title),
			zap.String("detail", problem.Detail),
		)
	}
	return result
}

func fieldIndex(field string) (int, bool) {
	m := fieldIndexPattern.FindStringSubmatch(field)
	if m == nil {
		return 0, false
	}
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return idx, true
}

func transportFailure(err error) reconcile.SubmitResult {
	return reconcile.SubmitResult{
		Status: reconcile.TransportFailure,
		Reason: err.Error(),
	}
}

func statusFailure(resp *resty.Response) reconcile.SubmitResult {
	reason := fmt.Sprintf("unexpected status %d", resp.StatusCode())
	if body := strings.TrimSpace(string(resp.Body())); body != "" {
		reason = fmt.Sprintf("%s: %s", reason, body)
	}
	return reconcile.SubmitResult{
		Status:     reconcile.TransportFailure,
		StatusCode: resp.StatusCode(),
		Reason:     reason,
	}
}
