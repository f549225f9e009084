package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/postplannerhq/postplanner/internal/transfer"
)

const (
	fetchTimeout   = 10 * time.Second
	fetchUserAgent = "Mozilla/5.0 (compatible; PostPlannerBot/1.0)"
	maxFetchBytes  = 5 << 20
)

// URLParserService fetches a page and extracts post-worthy metadata from it.
// Every URL passes the private-address guard before any connection is opened.
type URLParserService interface {
	Parse(ctx context.Context, req *transfer.ParseURLRequest) (*transfer.URLMetadata, error)
}

type urlParserService struct {
	client   *http.Client
	validate func(string) error
}

func NewURLParserService() URLParserService {
	return &urlParserService{
		client:   &http.Client{Timeout: fetchTimeout},
		validate: ValidateFetchURL,
	}
}

var metadataHosts = []string{
	"metadata.google.internal",
	"169.254.169.254",
	"metadata.azure.com",
	"metadata",
}

// ValidateFetchURL rejects URLs that could reach loopback, private networks,
// or cloud metadata services. It inspects only the URL string; no DNS lookup
// or connection happens here.
func ValidateFetchURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid URL", ErrValidation)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: only http and https URLs are allowed", ErrSSRFRejected)
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "" {
		return fmt.Errorf("%w: invalid URL", ErrValidation)
	}

	if hostname == "localhost" ||
		hostname == "0.0.0.0" ||
		strings.HasPrefix(hostname, "127.") ||
		strings.HasSuffix(hostname, ".local") ||
		strings.HasSuffix(hostname, ".localhost") {
		return fmt.Errorf("%w: local addresses are not fetchable", ErrSSRFRejected)
	}

	for _, blocked := range metadataHosts {
		if strings.Contains(hostname, blocked) {
			return fmt.Errorf("%w: metadata endpoints are not fetchable", ErrSSRFRejected)
		}
	}

	if addr, err := netip.ParseAddr(hostname); err == nil {
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() ||
			addr.IsMulticast() || addr.IsUnspecified() {
			return fmt.Errorf("%w: private address ranges are not fetchable", ErrSSRFRejected)
		}
		if addr.Is4() {
			first := addr.As4()[0]
			if first == 0 || first >= 224 {
				return fmt.Errorf("%w: private address ranges are not fetchable", ErrSSRFRejected)
			}
		}
	}

	return nil
}

func (s *urlParserService) Parse(ctx context.Context, req *transfer.ParseURLRequest) (*transfer.URLMetadata, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, fmt.Errorf("%w: url is required", ErrValidation)
	}
	if err := s.validate(req.URL); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL", ErrValidation)
	}
	httpReq.Header.Set("User-Agent", fetchUserAgent)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return nil, ErrFetchTimeout
		}
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "text/html") && !strings.Contains(contentType, "application/xhtml") {
		return nil, fmt.Errorf("%w: URL must return HTML content", ErrValidation)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	return extractMetadata(string(body), req.URL, req.ContentType), nil
}

var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<meta property="og:title" content="([^"]+)"`),
		regexp.MustCompile(`<meta name="twitter:title" content="([^"]+)"`),
		regexp.MustCompile(`<title>([^<]+)</title>`),
	}
	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`<meta property="og:description" content="([^"]+)"`),
		regexp.MustCompile(`<meta name="twitter:description" content="([^"]+)"`),
		regexp.MustCompile(`<meta name="description" content="([^"]+)"`),
	}
	imagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<meta property="og:image" content="([^"]+)"`),
		regexp.MustCompile(`<meta name="twitter:image" content="([^"]+)"`),
	}
	siteNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`<meta property="og:site_name" content="([^"]+)"`),
	}
)

func extractMetadata(page, pageURL, requestedType string) *transfer.URLMetadata {
	meta := &transfer.URLMetadata{
		Title:       cleanText(firstMatch(page, titlePatterns)),
		Description: cleanText(firstMatch(page, descriptionPatterns)),
		Image:       firstMatch(page, imagePatterns),
		SiteName:    firstMatch(page, siteNamePatterns),
		URL:         pageURL,
	}
	if meta.SiteName == "" {
		if parsed, err := url.Parse(pageURL); err == nil {
			meta.SiteName = parsed.Hostname()
		}
	}

	meta.Content = mainContent(page, pageURL)
	if meta.Content == "" {
		meta.Content = meta.Description
	}

	meta.DetectedType = requestedType
	if meta.DetectedType == "" {
		switch {
		case isRecipePage(page, pageURL):
			meta.DetectedType = "recipes"
		case isWorkoutPage(page, pageURL):
			meta.DetectedType = "workouts"
		}
	}

	switch meta.DetectedType {
	case "recipes":
		meta.Field1, meta.Field2 = extractRecipeFields(page)
	case "workouts":
		meta.Field1, meta.Field2 = extractWorkoutFields(page)
	}

	return meta
}

// mainContent runs the page through the readability extractor and keeps the
// first stretch of article text.
func mainContent(page, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(page), parsed)
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(article.TextContent), " ")
	if len(text) > 500 {
		text = text[:500]
	}
	return text
}

func firstMatch(page string, patterns []*regexp.Regexp) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(page); m != nil {
			return m[1]
		}
	}
	return ""
}

func cleanText(text string) string {
	return strings.TrimSpace(html.UnescapeString(text))
}

var recipeIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)@type"?\s*:\s*"?Recipe`),
	regexp.MustCompile(`(?i)recipe`),
	regexp.MustCompile(`(?i)allrecipes\.com`),
	regexp.MustCompile(`(?i)foodnetwork\.com`),
	regexp.MustCompile(`(?i)tasty\.co`),
	regexp.MustCompile(`(?i)epicurious\.com`),
	regexp.MustCompile(`(?i)simplyrecipes\.com`),
	regexp.MustCompile(`(?i)budgetbytes\.com`),
	regexp.MustCompile(`(?i)<h[1-3][^>]*>.*ingredients.*</h[1-3]>`),
	regexp.MustCompile(`(?i)class="[^"]*recipe[^"]*"`),
}

var workoutIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)workout`),
	regexp.MustCompile(`(?i)exercise`),
	regexp.MustCompile(`(?i)fitness`),
	regexp.MustCompile(`(?i)bodybuilding\.com`),
	regexp.MustCompile(`(?i)menshealth\.com`),
	regexp.MustCompile(`(?i)womenshealthmag\.com`),
	regexp.MustCompile(`(?i)muscleandstrength\.com`),
	regexp.MustCompile(`(?i)<h[1-3][^>]*>.*(workout|exercise).*</h[1-3]>`),
}

func isRecipePage(page, pageURL string) bool {
	for _, pattern := range recipeIndicators {
		if pattern.MatchString(page) || pattern.MatchString(pageURL) {
			return true
		}
	}
	return false
}

func isWorkoutPage(page, pageURL string) bool {
	for _, pattern := range workoutIndicators {
		if pattern.MatchString(page) || pattern.MatchString(pageURL) {
			return true
		}
	}
	return false
}
