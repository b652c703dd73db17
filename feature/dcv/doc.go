// Package dcv is the client for the domain-validation API.
//
// It covers the four operations the tool needs:
//
//   - creating a validation request for a single domain and extracting the
//     DNS TXT challenge from the response, including the fallback lookup
//     when the domain already has a record
//   - bulk-submitting validation triggers (validate-now)
//   - bulk-deleting validation records
//   - listing the account's domains page by page to find the ones still
//     pending validation
//
// The two bulk operations are exposed as reconcile.Submitter functions: they
// send exactly one request per call and classify the response into the
// structured SubmitResult the reconciliation driver consumes. In particular
// they decode the API's 400 bodies, whose errors[].field entries point at
// offending items by payload position ("domains[2].domainName"), and
// translate those positions into the offending domain names so nothing
// downstream ever touches a raw response.
package dcv
