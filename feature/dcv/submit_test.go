package dcv

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"dcv-manager/core/reconcile"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rc := resty.New().SetBaseURL(srv.URL)
	return NewClient(rc, zap.NewNop()), srv
}

func testChunk() []reconcile.Item {
	return []reconcile.Item{
		reconcile.NewItem("a.com", "DOMAIN"),
		reconcile.NewItem("b.com", "DOMAIN"),
		reconcile.NewItem("c.com", "DV_SAN"),
	}
}

func TestSubmitDelete_AllAccepted(t *testing.T) {
	var captured bulkPayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, domainsPath, r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &captured))

		w.WriteHeader(http.StatusNoContent)
	})

	res := client.SubmitDelete(context.Background(), testChunk())

	assert.Equal(t, reconcile.AllAccepted, res.Status)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "Deleted successfully", res.Detail)

	// Payload carries every item with its scope, no validation method.
	assert.Len(t, captured.Domains, 3)
	assert.Equal(t, domainRef{DomainName: "c.com", ValidationScope: "DV_SAN"}, captured.Domains[2])
}

func TestSubmitDelete_RejectionWithFieldPointers(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{
			"title": "Bad Request",
			"detail": "one or more domains are invalid",
			"errors": [
				{"field": "domains[1].domainName", "title": "Domain is not found", "detail": "b.com does not exist"}
			]
		}`))
	})

	res := client.SubmitDelete(context.Background(), testChunk())

	assert.Equal(t, reconcile.PartiallyRejected, res.Status)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Len(t, res.Faults, 1)
	assert.Equal(t, "b.com", res.Faults[0].Domain)
	assert.Equal(t, "Domain is not found", res.Faults[0].Title)
	assert.Equal(t, "b.com does not exist", res.Faults[0].Detail)
}

func TestSubmitDelete_RejectionFieldEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int // expected fault count
	}{
		{
			name: "unparsable body",
			body: `not json`,
			want: 0,
		},
		{
			name: "no errors list",
			body: `{"title": "Bad Request", "detail": "batch invalid"}`,
			want: 0,
		},
		{
			name: "field without index",
			body: `{"errors": [{"field": "domains", "title": "x"}]}`,
			want: 0,
		},
		{
			name: "out of range index dropped, valid index kept",
			body: `{"errors": [
				{"field": "domains[9].domainName", "title": "x"},
				{"field": "domains[0].domainName", "title": "y", "detail": "a.com bad"}
			]}`,
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			})

			res := client.SubmitDelete(context.Background(), testChunk())
			assert.Equal(t, reconcile.PartiallyRejected, res.Status)
			assert.Len(t, res.Faults, tt.want)
		})
	}
}

func TestSubmitDelete_MultiStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultiStatus)
		_, _ = w.Write([]byte(`{"partial": true}`))
	})

	res := client.SubmitDelete(context.Background(), testChunk())
	assert.Equal(t, reconcile.AllAccepted, res.Status)
	assert.Contains(t, res.Detail, "Multi-Status")
}

func TestSubmitDelete_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`forbidden`))
	})

	res := client.SubmitDelete(context.Background(), testChunk())
	assert.Equal(t, reconcile.TransportFailure, res.Status)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Contains(t, res.Reason, "unexpected status 403")
}

func TestSubmitDelete_NetworkError(t *testing.T) {
	client, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	res := client.SubmitDelete(context.Background(), testChunk())
	assert.Equal(t, reconcile.TransportFailure, res.Status)
	assert.Zero(t, res.StatusCode)
	assert.NotEmpty(t, res.Reason)
}

func TestSubmitValidate_AcceptedWithStatuses(t *testing.T) {
	var captured bulkPayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, validatePath, r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &captured))

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"domains": [
			{"domainName": "a.com", "domainStatus": "VALIDATION_IN_PROGRESS"},
			{"domainName": "B.COM"}
		]}`))
	})

	res := client.SubmitValidate(context.Background(), testChunk())

	assert.Equal(t, reconcile.AllAccepted, res.Status)
	assert.Equal(t, "Submitted", res.Detail)
	assert.Equal(t, "Status: VALIDATION_IN_PROGRESS", res.ItemDetail["a.com"])
	assert.Equal(t, "Status: Submitted", res.ItemDetail["b.com"])

	// validate-now enforces the DNS_TXT method on every entry.
	for _, d := range captured.Domains {
		assert.Equal(t, "DNS_TXT", d.ValidationMethod)
	}
}

func TestSubmitValidate_AcceptedUnparsableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<html>`))
	})

	res := client.SubmitValidate(context.Background(), testChunk())
	assert.Equal(t, reconcile.AllAccepted, res.Status)
	assert.Equal(t, "Request accepted (response parsing failed)", res.Detail)
	assert.Empty(t, res.ItemDetail)
}

func TestSubmitValidate_Rejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors": [
			{"field": "domains[2].domainName", "title": "Invalid scope"}
		]}`))
	})

	res := client.SubmitValidate(context.Background(), testChunk())
	assert.Equal(t, reconcile.PartiallyRejected, res.Status)
	assert.Len(t, res.Faults, 1)
	assert.Equal(t, "c.com", res.Faults[0].Domain)
}
