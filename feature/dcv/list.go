package dcv

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"dcv-manager/core/reconcile"

	"go.uber.org/zap"
)

// listPageSize keeps the number of listing requests low on large accounts.
const listPageSize = 500

// FetchPending lists every domain of the account and returns the ones still
// awaiting validation (REQUEST_ACCEPTED or VALIDATION_IN_PROGRESS), as work
// items for the validate command's --all mode.
func (c *Client) FetchPending(ctx context.Context) ([]reconcile.Item, error) {
	var items []reconcile.Item

	for page := 1; ; page++ {
		c.log.Debug("fetching domains page", zap.Int("page", page))

		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("page", strconv.Itoa(page)).
			SetQueryParam("pageSize", strconv.Itoa(listPageSize)).
			Get(domainsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch domains page %d: %w", page, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch domains page %d: status %d", page, resp.StatusCode())
		}

		var body domainsPage
		if err := json.Unmarshal(resp.Body(), &body); err != nil {
			return nil, fmt.Errorf("failed to parse domains page %d: %w", page, err)
		}
		if len(body.Domains) == 0 {
			break
		}

		for _, d := range body.Domains {
			switch d.DomainStatus {
			case statusRequestAccepted, statusValidationProgress:
				items = append(items, reconcile.NewItem(d.DomainName, d.ValidationScope))
			}
		}

		// A short page is the last page.
		if len(body.Domains) < listPageSize {
			break
		}
	}

	c.log.Info("fetched pending domains from API", zap.Int("items", len(items)))
	return items, nil
}
