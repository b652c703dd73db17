// Package sheet reads work items from and writes results to xlsx workbooks.
//
// Input workbooks come from operations teams and are messy: the domain
// column may be labelled Domain, Hostname, DomainName or "Domain Name" in
// any casing, the scope column is frequently absent, and blank rows appear
// between sections. The reader matches columns case-insensitively, falls
// back to the first column for domains, defaults missing scopes to DOMAIN,
// and normalizes every identifier (trim + lowercase) before the core ever
// sees it.
//
// The writers produce the two output shapes of the tool: the reconciliation
// ledger (one row per item with its terminal outcome and the API's error
// text verbatim) and the challenge listing of the request command (one DNS
// TXT record per domain).
package sheet
