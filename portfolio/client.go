package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultBaseURL is where the profile API listens in development
const DefaultBaseURL = "http://localhost:5000"

// APIError is a non-2xx reply from the profile API
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portfolio api: status %d", e.Status)
	}
	return fmt.Sprintf("portfolio api: status %d: %s", e.Status, e.Message)
}

// Client talks to the profile REST API
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time
}

type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithNow fixes the clock used for derived fields such as durations
func WithNow(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
			if json.Unmarshal(raw, &payload) == nil {
				apiErr.Message = payload.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Developer fetches GET /api/developer
func (c *Client) Developer(ctx context.Context) (Developer, error) {
	var d Developer
	if err := c.get(ctx, "/api/developer", &d); err != nil {
		return Developer{}, err
	}
	if err := normalizeDeveloper(&d); err != nil {
		return Developer{}, err
	}
	return d, nil
}

// Skills fetches GET /api/skills
func (c *Client) Skills(ctx context.Context) ([]Skill, error) {
	var out []Skill
	if err := c.get(ctx, "/api/skills", &out); err != nil {
		return nil, err
	}
	if err := normalizeSkills(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Technologies fetches GET /api/technologies
func (c *Client) Technologies(ctx context.Context) ([]Technology, error) {
	var out []Technology
	if err := c.get(ctx, "/api/technologies", &out); err != nil {
		return nil, err
	}
	if err := normalizeTechnologies(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Projects fetches GET /api/projects, optionally only featured ones
func (c *Client) Projects(ctx context.Context, featuredOnly bool) ([]Project, error) {
	path := "/api/projects"
	if featuredOnly {
		path += "?" + url.Values{"featured": {"true"}}.Encode()
	}
	var out []Project
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if err := normalizeProjects(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Project fetches GET /api/projects/{id}
func (c *Client) Project(ctx context.Context, id int) (Project, error) {
	var p Project
	if err := c.get(ctx, "/api/projects/"+strconv.Itoa(id), &p); err != nil {
		return Project{}, err
	}
	one := []Project{p}
	if err := normalizeProjects(one); err != nil {
		return Project{}, err
	}
	return one[0], nil
}

// Experiences fetches GET /api/experiences
func (c *Client) Experiences(ctx context.Context) ([]Experience, error) {
	var out []Experience
	if err := c.get(ctx, "/api/experiences", &out); err != nil {
		return nil, err
	}
	if err := normalizeExperiences(out, c.now()); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats fetches GET /api/stats
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	if err := c.get(ctx, "/api/stats", &s); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// SendContact posts the form to POST /api/contact, fields as given
func (c *Client) SendContact(ctx context.Context, msg ContactMessage) (ContactReceipt, error) {
	var r ContactReceipt
	if err := c.do(ctx, http.MethodPost, "/api/contact", msg, &r); err != nil {
		return ContactReceipt{}, err
	}
	return r, nil
}
