package placeholder

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"albumviewer/internal"
	cl "albumviewer/pkg/catelog"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/json"
)

// DefaultBaseURL is the public API the viewer reads from.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// maxDecodeMsg bounds the payload excerpt kept in a DecodeError.
const maxDecodeMsg = 512

type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxOpenConns int
}

var _ internal.Gateway = (*Placeholder)(nil)

// Placeholder implements the internal Gateway interface against the
// jsonplaceholder REST API. Every call issues exactly one GET request.
type Placeholder struct {
	baseURL string
	client  *http.Client
	logger  tools.Logger
}

// New creates a new Placeholder gateway using the provided configuration.
func New(c Config, logger tools.Logger) *Placeholder {
	var ops []httputils.ClientOption
	if c.Timeout > 0 {
		ops = append(ops, httputils.WithTimeout(c.Timeout))
	}
	if c.MaxOpenConns > 0 {
		ops = append(ops, httputils.WithMaxOpenConns(c.MaxOpenConns))
	}
	return NewWithClient(c.BaseURL, httputils.NewClient(ops...), logger)
}

// NewWithClient creates a new Placeholder gateway that sends its requests
// through the given HTTP client.
func NewWithClient(baseURL string, client *http.Client, logger tools.Logger) *Placeholder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Placeholder{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// BaseURL returns the API root requests are sent to.
func (p *Placeholder) BaseURL() string {
	return p.baseURL
}

func (p *Placeholder) endpoint(path string, q url.Values) string {
	u := p.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// get performs a single GET against the endpoint and decodes the JSON body
// into v.
func (p *Placeholder) get(ctx context.Context, op, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &cl.FetchError{Op: op, URL: endpoint, Err: errors.Wrap(err, "create request")}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("[get] request failed",
			"op", op,
			"url", endpoint,
			"details", err.Error(),
		)
		return &cl.FetchError{Op: op, URL: endpoint, Err: errors.Wrap(err, "perform request")}
	}
	defer res.Body.Close()

	p.logger.Debug("[get] response received",
		"op", op,
		"url", endpoint,
		"code", res.StatusCode,
		"duration", time.Since(start),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &cl.FetchError{
			Op:         op,
			URL:        endpoint,
			StatusCode: res.StatusCode,
			Err:        errors.Errorf("unexpected response: %s", http.StatusText(res.StatusCode)),
		}
	}

	if err := json.Decode(res.Body, v); err != nil {
		return &cl.FetchError{Op: op, URL: endpoint, Err: syntaxError(op, err)}
	}
	return nil
}

func syntaxError(op string, err error) *cl.DecodeError {
	msg := err.Error()
	if len(msg) > maxDecodeMsg {
		msg = msg[:maxDecodeMsg] + "..."
	}
	return &cl.DecodeError{Op: op, Msg: msg, Err: err}
}
