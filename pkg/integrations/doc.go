// Package integrations provides the HTTP plumbing for remote repository APIs.
//
// # Overview
//
// The [Client] type wraps net/http with the behavior every API client in
// commitpin needs:
//
//   - default headers and optional basic or bearer authentication
//   - mapping of HTTP statuses onto coded errors (not found, unauthorized,
//     rate limited, network)
//   - opt-in retries of transient failures via [httputil.Retry]
//   - request/response events through [observability.HTTP]
//
// Responses are never cached: every lookup is one round trip.
//
// API-specific clients live in subpackages:
//
//   - [github]: tag and commit listings used to pin dependencies
//
// [github]: github.com/matzehuels/commitpin/pkg/integrations/github
// [httputil.Retry]: github.com/matzehuels/commitpin/pkg/httputil.Retry
// [observability.HTTP]: github.com/matzehuels/commitpin/pkg/observability.HTTP
package integrations
