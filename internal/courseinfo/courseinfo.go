// Package courseinfo fetches public course pages and extracts the course
// title, description, prerequisites and credits.
package courseinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var (
	ErrNotFound      = errors.New("course page not found")
	ErrEmptyResponse = errors.New("course page is empty")
)

// Info is what could be read from a course page. Empty fields were not found.
type Info struct {
	CourseCode    string
	URL           string
	Title         string
	Description   string
	Prerequisites string
	Credits       float64
}

// Client fetches course pages from a course-information site.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, e.g. "https://mcgill.courses".
// A non-positive timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PageURL returns the course page for code: "COMP 202" maps to
// {base}/course/comp-202.
func (c *Client) PageURL(code string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(code), "-"))
	return fmt.Sprintf("%s/course/%s", c.baseURL, slug)
}

// Fetch downloads and parses the page of code.
func (c *Client) Fetch(ctx context.Context, code string) (*Info, error) {
	url := c.PageURL(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", code, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%s: %w", url, ErrEmptyResponse)
	}

	info, err := Parse(bytes.NewReader(body), code)
	if err != nil {
		return nil, err
	}
	info.URL = url
	return info, nil
}

var (
	descriptionSelectors = []string{
		`div[class*="description"]`,
		`p[class*="description"]`,
		`div[class*="course-description"]`,
		`section[class*="description"]`,
	}
	prereqKeywords = []string{"prerequisite", "prereq", "required"}
	creditPattern  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*credit`)
)

// Parse extracts course details from a course page.
func Parse(r io.Reader, code string) (*Info, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	info := &Info{CourseCode: code}
	info.Title = parseTitle(doc, code)
	info.Description = parseDescription(doc)
	info.Prerequisites = parsePrerequisites(doc)
	if m := creditPattern.FindStringSubmatch(doc.Text()); m != nil {
		info.Credits, _ = strconv.ParseFloat(m[1], 64)
	}
	return info, nil
}

func parseTitle(doc *goquery.Document, code string) string {
	sel := doc.Find("h1").First()
	if sel.Length() == 0 {
		sel = doc.Find("title").First()
	}
	title := clean(sel.Text())
	if upper := strings.ToUpper(code); upper != "" && strings.Contains(title, upper) {
		title = clean(strings.ReplaceAll(title, upper, ""))
	}
	return title
}

func parseDescription(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		if text := clean(doc.Find(selector).First().Text()); len(text) > 20 {
			return text
		}
	}

	var desc string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if text := clean(p.Text()); len(text) > 100 {
			desc = text
			return false
		}
		return true
	})
	return desc
}

// parsePrerequisites returns the text of the first element whose own text
// mentions a prerequisite keyword.
func parsePrerequisites(doc *goquery.Document) string {
	for _, keyword := range prereqKeywords {
		var found string
		doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if !strings.Contains(strings.ToLower(ownText(s)), keyword) {
				return true
			}
			found = clean(s.Text())
			return false
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if goquery.NodeName(c) == "#text" {
			b.WriteString(c.Text())
		}
	})
	return b.String()
}

func clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
