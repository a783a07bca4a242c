package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/ka2n/ufvdata/api/schema"
	"github.com/ka2n/ufvdata/api/session"
	"github.com/ka2n/ufvdata/log"
	"github.com/morikuni/failure/v2"
)

// Client talks to one portal application, such as the financial aid or the
// registration app. Requests are issued one at a time by the caller.
type Client struct {
	http *resty.Client

	// DumpInvalid pretty-prints payloads that fail validation.
	DumpInvalid bool
}

// NewClient creates a client for the application rooted at baseURL.
// Requests and responses are logged at debug level.
func NewClient(baseURL string) *Client {
	httpClient := resty.New()
	// Session cookies are carried explicitly through Request.Cookies.
	httpClient.SetCookieJar(nil)
	httpClient.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	httpClient.SetTransport(log.Transport())
	httpClient.SetHeader("Accept", "application/json")
	return &Client{http: httpClient}
}

// Request describes one GET against the portal.
type Request struct {
	// Name is what is being fetched, used in logs and errors.
	Name string
	// Verb describes the action in logs, "fetch" when empty.
	Verb    string
	Path    string
	Query   map[string]string
	Cookies session.Cookies
}

func (r Request) verb() string {
	if r.Verb == "" {
		return "fetch"
	}
	return r.Verb
}

// Get issues the request. Any response other than 200 is an ErrTransport
// failure.
func (c *Client) Get(ctx context.Context, r Request) (*resty.Response, error) {
	req := c.http.R().SetContext(ctx)
	if len(r.Query) > 0 {
		req.SetQueryParams(r.Query)
	}
	r.Cookies.Apply(req)

	resp, err := req.Get(r.Path)
	if err != nil {
		return nil, failure.Translate(err, ErrTransport,
			failure.Message("Failed to "+r.verb()+" "+r.Name),
			failure.Context{"path": r.Path},
		)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Error("Failed to "+r.verb()+" "+r.Name,
			"url", resp.Request.URL,
			"status", resp.Status(),
		)
		return nil, failure.New(ErrTransport,
			failure.Message("Failed to "+r.verb()+" "+r.Name),
			failure.Context{
				"url":    resp.Request.URL,
				"status": resp.Status(),
			},
		)
	}

	log.Debug(pastTense(r.verb())+" "+r.Name, "url", resp.Request.URL)
	return resp, nil
}

// GetJSON issues the request and decodes the body into T. Validation
// failures are logged with every violation before being returned.
func GetJSON[T any](ctx context.Context, c *Client, r Request) (T, *resty.Response, error) {
	var zero T

	resp, err := c.Get(ctx, r)
	if err != nil {
		return zero, nil, err
	}

	out, err := schema.Decode[T](resp.Body())
	if err != nil {
		if failure.Is(err, schema.ErrNotJSON) {
			log.Error(r.Name+" is not valid JSON",
				"url", resp.Request.URL,
				"body", string(resp.Body()),
			)
			return zero, nil, failure.Wrap(err, failure.Context{"url": resp.Request.URL})
		}

		var violations schema.Violations
		if errors.As(err, &violations) {
			log.Error(r.Name+" failed validation",
				"url", resp.Request.URL,
				"violations", violations,
			)
		}
		if c.DumpInvalid {
			var parsed any
			if json.Unmarshal(resp.Body(), &parsed) == nil {
				log.Dump("Parsed Data", parsed)
			}
		}
		return zero, nil, failure.Wrap(err,
			failure.Message(r.Name+" failed validation"),
			failure.Context{"url": resp.Request.URL},
		)
	}
	return out, resp, nil
}

// Check validates a value built from portal data, such as a formatted output
// document. Violations are logged in full before being returned.
func Check(name string, v any, fields ...failure.Field) error {
	err := schema.Check(v)
	if err == nil {
		return nil
	}
	var violations schema.Violations
	if errors.As(err, &violations) {
		log.Error(name+" failed validation", "violations", violations)
	}
	return failure.Wrap(err, append([]failure.Field{failure.Message(name + " failed validation")}, fields...)...)
}

func pastTense(verb string) string {
	if verb == "" {
		return ""
	}
	s := strings.ToUpper(verb[:1]) + verb[1:]
	if strings.HasSuffix(s, "e") {
		return s + "d"
	}
	return s + "ed"
}
