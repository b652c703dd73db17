package dcv

// API paths, relative to the EdgeGrid host.
const (
	domainsPath  = "/domain-validation/v1/domains"
	validatePath = "/domain-validation/v1/domains/validate-now"
)

// Domain statuses the API reports.
const (
	statusValidated          = "VALIDATED"
	statusRequestAccepted    = "REQUEST_ACCEPTED"
	statusValidationProgress = "VALIDATION_IN_PROGRESS"
)

// domainRef is one entry of a bulk request payload.
type domainRef struct {
	DomainName       string `json:"domainName"`
	ValidationScope  string `json:"validationScope"`
	ValidationMethod string `json:"validationMethod,omitempty"`
}

// bulkPayload is the request body shared by the bulk endpoints.
type bulkPayload struct {
	Domains []domainRef `json:"domains"`
}

// apiProblem is an RFC 7807 style error body. The 400 responses of the bulk
// endpoints nest per-item problems under errors, each pointing at the
// offending payload entry via field.
type apiProblem struct {
	Title  string       `json:"title"`
	Detail string       `json:"detail"`
	Field  string       `json:"field"`
	Errors []apiProblem `json:"errors"`
}

// txtRecord is the DNS challenge record of a pending validation.
type txtRecord struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type validationChallenge struct {
	TxtRecord txtRecord `json:"txtRecord"`
}

// domainEntry is one domain object as it appears across the API's response
// shapes: creation successes/errors lists, the GET detail object, and the
// paginated listing.
type domainEntry struct {
	DomainName          string               `json:"domainName"`
	ValidationScope     string               `json:"validationScope"`
	Status              string               `json:"status"`
	DomainStatus        string               `json:"domainStatus"`
	Detail              string               `json:"detail"`
	ValidationChallenge *validationChallenge `json:"validationChallenge"`
}

// createResponse covers the shapes the creation endpoint answers with on
// 200/201/207: successes/errors lists or a bare domain object.
type createResponse struct {
	domainEntry
	Successes []domainEntry `json:"successes"`
	Errors    []domainEntry `json:"errors"`
}

// validateResponse is the body of an accepted validate-now call.
type validateResponse struct {
	Domains []domainEntry `json:"domains"`
}

// domainsPage is one page of the domain listing.
type domainsPage struct {
	Domains []domainEntry `json:"domains"`
}
