// Package httputil provides HTTP helpers shared by the remote API clients.
//
// # Retry
//
// [Retry] re-runs an operation after transient failures. Only errors
// wrapped in [RetryableError] (transport failures, 5xx responses) are
// retried; everything else, including 4xx responses and decoding errors,
// is returned immediately.
//
// commitpin issues exactly one request per lookup by default. Retries are
// opt-in (--retries) because the GitHub API rate limit is the scarcer
// resource during a verification run.
//
//	err := httputil.Retry(ctx, 1+retries, time.Second, func() error {
//	    return client.Get(ctx, url, &tags)
//	})
package httputil
