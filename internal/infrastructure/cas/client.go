package cas

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alumni-connect-api/internal/domain"
)

// Attributes holds the verified identity attributes extracted from a CAS
// ticket validation response.
type Attributes struct {
	UID       string
	Email     string
	Name      string
	FirstName string
	LastName  string
	RollNo    string
}

// DisplayName resolves the best available name for the user, falling back
// to first/last name and finally the email local part.
func (a *Attributes) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	if full := strings.TrimSpace(a.FirstName + " " + a.LastName); full != "" {
		return full
	}
	return strings.SplitN(a.Email, "@", 2)[0]
}

// Client talks to a CAS v3 server. ServerURL points at the CAS base
// (e.g. https://login.example.edu/cas); ServiceURL is this backend's login
// callback, registered with the CAS server.
type Client struct {
	serverURL  string
	serviceURL string
	httpClient *http.Client
}

// Option customises a Client. Used by tests to point at a stub server.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for validation calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(serverURL, serviceURL string, opts ...Option) *Client {
	c := &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		serviceURL: serviceURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoginURL returns the CAS login page URL the browser should be sent to.
func (c *Client) LoginURL() string {
	q := url.Values{"service": {c.serviceURL}}
	return c.serverURL + "/login?" + q.Encode()
}

// LogoutURL returns the CAS logout URL. redirectURL, when non-empty, is where
// CAS sends the browser after terminating its own session.
func (c *Client) LogoutURL(redirectURL string) string {
	if redirectURL == "" {
		return c.serverURL + "/logout"
	}
	q := url.Values{"service": {redirectURL}}
	return c.serverURL + "/logout?" + q.Encode()
}

// ValidateTicket exchanges a service ticket for verified user attributes via
// the CAS p3/serviceValidate endpoint. Returns a domain.ErrUnauthorized-wrapped
// error when CAS rejects the ticket.
func (c *Client) ValidateTicket(ctx context.Context, ticket string) (*Attributes, error) {
	q := url.Values{
		"service": {c.serviceURL},
		"ticket":  {ticket},
	}
	endpoint := c.serverURL + "/p3/serviceValidate?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build validate request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cas validate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read cas response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cas validate returned status %d", resp.StatusCode)
	}

	var sr serviceResponse
	if err := xml.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parse cas response: %w", err)
	}
	if sr.Failure != nil {
		return nil, fmt.Errorf("cas rejected ticket (%s): %w", sr.Failure.Code, domain.ErrUnauthorized)
	}
	if sr.Success == nil || sr.Success.User == "" {
		return nil, fmt.Errorf("cas response missing user: %w", domain.ErrUnauthorized)
	}

	attrs := &Attributes{
		// CAS reports the institutional email as the principal.
		Email:     sr.Success.User,
		UID:       sr.Success.Attributes.UID,
		Name:      sr.Success.Attributes.Name,
		FirstName: sr.Success.Attributes.FirstName,
		LastName:  sr.Success.Attributes.LastName,
		RollNo:    sr.Success.Attributes.RollNo,
	}
	return attrs, nil
}

// CAS v3 serviceResponse XML shapes. Namespace prefixes are ignored by
// encoding/xml, so only local element names matter here.
type serviceResponse struct {
	XMLName xml.Name               `xml:"serviceResponse"`
	Success *authenticationSuccess `xml:"authenticationSuccess"`
	Failure *authenticationFailure `xml:"authenticationFailure"`
}

type authenticationSuccess struct {
	User       string        `xml:"user"`
	Attributes casAttributes `xml:"attributes"`
}

type casAttributes struct {
	UID       string `xml:"uid"`
	Name      string `xml:"Name"`
	FirstName string `xml:"FirstName"`
	LastName  string `xml:"LastName"`
	RollNo    string `xml:"RollNo"`
}

type authenticationFailure struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}
