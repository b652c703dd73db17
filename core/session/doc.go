// Package session provides the authenticated HTTP transport for the
// domain-validation API.
//
// Credentials are read from an EdgeGrid .edgerc INI file (path + section),
// and every outbound request is signed with the official EdgeGrid signer in
// a pre-request hook, so callers never deal with authentication themselves.
// An optional account switch key is attached to every request as a query
// parameter, which lets partners operate on a managed account.
//
// The transport is a resty client with a hard timeout and no internal
// retries: retry policy for batch rejections belongs to the reconcile
// driver, and transient-network backoff is deliberately out of scope.
package session
