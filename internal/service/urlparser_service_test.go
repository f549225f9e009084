package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postplannerhq/postplanner/internal/transfer"
)

func TestValidateFetchURLRejections(t *testing.T) {
	rejected := []string{
		"ftp://example.com/file",
		"file:///etc/passwd",
		"http://localhost:8080/admin",
		"http://127.0.0.1/debug",
		"http://127.0.0.53/resolver",
		"http://0.0.0.0:9000",
		"http://router.local/settings",
		"http://app.localhost/",
		"http://10.0.0.5/internal",
		"http://172.16.1.1/",
		"http://172.31.255.254/",
		"http://192.168.1.1/router",
		"http://169.254.169.254/latest/meta-data/",
		"http://0.1.2.3/",
		"http://224.0.0.1/",
		"http://metadata.google.internal/computeMetadata/v1/",
		"http://metadata.azure.com/",
		"http://metadata/",
	}
	for _, raw := range rejected {
		err := ValidateFetchURL(raw)
		assert.ErrorIs(t, err, ErrSSRFRejected, "url %s", raw)
	}
}

func TestValidateFetchURLAccepts(t *testing.T) {
	accepted := []string{
		"https://example.com/article",
		"http://blog.example.org/post?id=3",
		"https://93.184.216.34/page",
		"https://172.15.0.1/",
		"https://172.32.0.1/",
	}
	for _, raw := range accepted {
		assert.NoError(t, ValidateFetchURL(raw), "url %s", raw)
	}
}

func TestParseRejectsBeforeDialing(t *testing.T) {
	svc := NewURLParserService()

	_, err := svc.Parse(context.Background(), &transfer.ParseURLRequest{URL: "http://169.254.169.254/"})
	assert.ErrorIs(t, err, ErrSSRFRejected)

	_, err = svc.Parse(context.Background(), &transfer.ParseURLRequest{URL: ""})
	assert.ErrorIs(t, err, ErrValidation)
}

const recipePage = `<!DOCTYPE html>
<html><head>
<title>Fallback Title</title>
<meta property="og:title" content="Best Pancakes &amp; Waffles">
<meta property="og:description" content="Fluffy weekend pancakes">
<meta property="og:image" content="https://example.com/pancakes.jpg">
<meta property="og:site_name" content="Example Kitchen">
<script type="application/ld+json">
{"@type": "Recipe", "recipeIngredient": ["flour", "milk", "eggs", "butter", "sugar", "baking powder", "salt"], "totalTime": "PT1H30M"}
</script>
</head><body>
<article><p>Whisk everything together and rest the batter before cooking.</p></article>
</body></html>`

// testParser skips the address guard so httptest's loopback servers are
// reachable.
func testParser(client *http.Client) *urlParserService {
	return &urlParserService{
		client:   client,
		validate: func(string) error { return nil },
	}
}

func TestParseExtractsRecipeMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, fetchUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(recipePage))
	}))
	defer server.Close()

	svc := testParser(server.Client())
	meta, err := svc.Parse(context.Background(), &transfer.ParseURLRequest{URL: server.URL + "/pancakes"})
	require.NoError(t, err)

	assert.Equal(t, "Best Pancakes & Waffles", meta.Title, "entities are unescaped")
	assert.Equal(t, "Fluffy weekend pancakes", meta.Description)
	assert.Equal(t, "https://example.com/pancakes.jpg", meta.Image)
	assert.Equal(t, "Example Kitchen", meta.SiteName)
	assert.Equal(t, "recipes", meta.DetectedType)
	assert.Equal(t, "flour, milk, eggs, butter, sugar (+2 more)", meta.Field1)
	assert.Equal(t, "1h 30m", meta.Field2)
}

func TestParseNonHTMLRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"not": "html"}`))
	}))
	defer server.Close()

	svc := testParser(server.Client())
	_, err := svc.Parse(context.Background(), &transfer.ParseURLRequest{URL: server.URL})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestParseTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	}))
	defer slow.Close()

	svc := testParser(&http.Client{Timeout: 50 * time.Millisecond})
	_, err := svc.Parse(context.Background(), &transfer.ParseURLRequest{URL: slow.URL})
	assert.ErrorIs(t, err, ErrFetchTimeout)
}

func TestExtractWorkoutFields(t *testing.T) {
	page := `<html><body>
	<h2>Morning Workout</h2>
	<p>Duration: 45 minutes</p>
	<p>Difficulty: beginner</p>
	</body></html>`

	duration, difficulty := extractWorkoutFields(page)
	assert.Equal(t, "45 minutes", duration)
	assert.Equal(t, "Beginner", difficulty)

	duration, difficulty = extractWorkoutFields("<html></html>")
	assert.Equal(t, "30 minutes", duration)
	assert.Equal(t, "Intermediate", difficulty)
}

func TestExtractRecipeFieldsFallback(t *testing.T) {
	page := `<html><body>
	<ul class="recipe-ingredients"><li>flour</li><li>milk</li></ul>
	<p>Total time: 25 minutes</p>
	</body></html>`

	ingredients, cookTime := extractRecipeFields(page)
	assert.Equal(t, "flour, milk", ingredients)
	assert.Equal(t, "25 minutes", cookTime)

	ingredients, cookTime = extractRecipeFields("<html></html>")
	assert.Equal(t, "See recipe for ingredients", ingredients)
	assert.Equal(t, "See recipe for time", cookTime)
}

func TestWorkoutDetection(t *testing.T) {
	assert.True(t, isWorkoutPage("<h1>Full Body Workout</h1>", "https://example.com"))
	assert.True(t, isWorkoutPage("<html></html>", "https://bodybuilding.com/routines"))
	assert.False(t, isWorkoutPage("<h1>Travel Diary</h1>", "https://example.com/travel"))
}
