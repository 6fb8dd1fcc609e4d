package integrations

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single API request.
const DefaultTimeout = 30 * time.Second

// Credentials authenticate API requests. Basic credentials take precedence
// over a token when both are set. The zero value sends anonymous requests.
type Credentials struct {
	User     string
	Password string
	Token    string
}

// Anonymous reports whether no credentials are configured.
func (c Credentials) Anonymous() bool {
	return (c.User == "" || c.Password == "") && c.Token == ""
}

// Method returns "basic", "token" or "none" for logging.
func (c Credentials) Method() string {
	switch {
	case c.User != "" && c.Password != "":
		return "basic"
	case c.Token != "":
		return "token"
	default:
		return "none"
	}
}

func (c Credentials) apply(req *http.Request) {
	switch c.Method() {
	case "basic":
		req.SetBasicAuth(c.User, c.Password)
	case "token":
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// NewHTTPClient creates an HTTP client with the given timeout, falling back
// to [DefaultTimeout] when timeout is not positive.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
