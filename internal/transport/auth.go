package transport

import (
	"net/http"
)

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth sends requests unauthenticated. Published spreadsheet exports need nothing more.
type NoAuth struct{}

// Apply implements Authenticator.
func (NoAuth) Apply(*http.Request) {}

// BearerAuth sends a bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements Authenticator.
func (a BearerAuth) Apply(req *http.Request) {
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}
}

// HeaderAuth sends a token in a custom header.
type HeaderAuth struct {
	Header string
	Token  string
}

// Apply implements Authenticator.
func (a HeaderAuth) Apply(req *http.Request) {
	if a.Header != "" && a.Token != "" {
		req.Header.Set(a.Header, a.Token)
	}
}

// AuthFor picks an authenticator: none without a token, bearer without a
// header name, a custom header otherwise.
func AuthFor(header, token string) Authenticator {
	switch {
	case token == "":
		return NoAuth{}
	case header == "" || http.CanonicalHeaderKey(header) == "Authorization":
		return BearerAuth{Token: token}
	}
	return HeaderAuth{Header: header, Token: token}
}
