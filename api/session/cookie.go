// Package session carries the portal's session cookies from one response to
// the requests that follow it.
package session

import (
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Cookie is a name/value pair taken from a Set-Cookie header.
// Attributes such as Path or Secure are not kept.
type Cookie struct {
	Name  string
	Value string
}

// Cookies is an ordered set of session cookies.
type Cookies []Cookie

// Extract reads every Set-Cookie header in h. Headers whose first segment is
// not a name=value pair are skipped. ok reports whether at least one cookie
// was found so callers can decide whether a missing session is fatal.
func Extract(h http.Header) (cookies Cookies, ok bool) {
	for _, line := range h.Values("Set-Cookie") {
		first, _, _ := strings.Cut(line, ";")
		name, value, found := strings.Cut(strings.TrimSpace(first), "=")
		if !found || name == "" {
			continue
		}
		cookies = append(cookies, Cookie{Name: name, Value: value})
	}
	return cookies, len(cookies) > 0
}

// String serializes the cookies as a Cookie request header value.
func (c Cookies) String() string {
	pairs := make([]string, len(c))
	for i, cookie := range c {
		pairs[i] = cookie.Name + "=" + cookie.Value
	}
	return strings.Join(pairs, "; ")
}

// Apply sets the Cookie header of req. It is a no-op for an empty set.
func (c Cookies) Apply(req *resty.Request) *resty.Request {
	if len(c) == 0 {
		return req
	}
	return req.SetHeader("Cookie", c.String())
}
