package acl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-client/internal/domain"
)

const testBinID = "694e220dd0ea881f4040cd2a"

const documentBody = `{
  "quotes": [
    {"author":"Seneca","category":"Life","categoryImage":"https://img.example/life.png","text":"Life is long if you know how to use it."},
    {"author":"Churchill","category":"Success","categoryImage":"https://img.example/success.png","text":"Success is not final."},
    {"author":"Lennon","category":"Life","categoryImage":"https://img.example/life.png","text":"Life is what happens."}
  ]
}`

// fakeBin serves the quotes document the way JSONBin does, dispatching on the filter header.
type fakeBin struct {
	requests atomic.Int32
	lastPath atomic.Value
	status   atomic.Int32
	bodies   map[string]string

	mu      sync.Mutex
	filters []string
}

func newFakeBin() *fakeBin {
	bin := &fakeBin{
		bodies: map[string]string{
			"":                  documentBody,
			CategoryNamesFilter: `["Life","Success","Life"]`,
			`quotes[?(@.category=="Success")]`: `[{"author":"Churchill","category":"Success",` +
				`"categoryImage":"https://img.example/success.png","text":"Success is not final."}]`,
		},
	}
	bin.status.Store(http.StatusOK)

	return bin
}

func (f *fakeBin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	f.lastPath.Store(r.URL.RequestURI())

	filter := r.Header.Get(DefaultFilterHeader)
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()

	if status := int(f.status.Load()); status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"message":"Bin not found"}`))

		return
	}

	body, ok := f.bodies[filter]
	if !ok {
		body = `[]`
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// lastFilter returns the filter header of the most recent request.
func (f *fakeBin) lastFilter() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.filters) == 0 {
		return "<no request>"
	}

	return f.filters[len(f.filters)-1]
}

func newQuotesClient(t *testing.T, bin *fakeBin) *QuotesClient {
	t.Helper()

	server := httptest.NewServer(bin)
	t.Cleanup(server.Close)

	httpClient, err := clients.New(testConfig(server.URL))
	require.NoError(t, err)

	return NewQuotesClient(QuotesClientConfig{Client: httpClient, BinID: testBinID})
}

func TestNewQuotesClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewQuotesClient(QuotesClientConfig{}) })
}

func TestNewQuotesClient_Defaults(t *testing.T) {
	httpClient, err := clients.New(testConfig(DefaultBaseURL))
	require.NoError(t, err)

	c := NewQuotesClient(QuotesClientConfig{Client: httpClient})

	assert.Equal(t, DefaultBinID, c.binID)
	assert.Equal(t, DefaultFilterHeader, c.filterHeader)
	assert.Equal(t, "/v3/b/"+DefaultBinID+"?meta=false", c.path())
	assert.Equal(t, "jsonbin", c.Name())
}

func TestQuotesClient_FetchAllQuotes(t *testing.T) {
	bin := newFakeBin()
	c := newQuotesClient(t, bin)

	quotes, err := c.FetchAllQuotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{
		{Author: "Seneca", Category: "Life", CategoryImage: "https://img.example/life.png", Text: "Life is long if you know how to use it."},
		{Author: "Churchill", Category: "Success", CategoryImage: "https://img.example/success.png", Text: "Success is not final."},
		{Author: "Lennon", Category: "Life", CategoryImage: "https://img.example/life.png", Text: "Life is what happens."},
	}, quotes)
	assert.Empty(t, bin.lastFilter())
	assert.Equal(t, "/v3/b/"+testBinID+"?meta=false", bin.lastPath.Load())
}

func TestQuotesClient_FetchQuotesByCategory(t *testing.T) {
	bin := newFakeBin()
	c := newQuotesClient(t, bin)

	quotes, err := c.FetchQuotesByCategory(context.Background(), "Success")

	require.NoError(t, err)
	assert.Equal(t, `quotes[?(@.category=="Success")]`, bin.lastFilter())
	require.Len(t, quotes, 1)
	assert.Equal(t, "Churchill", quotes[0].Author)
}

func TestQuotesClient_FetchQuotesByCategory_EmptyIsNotAnError(t *testing.T) {
	c := newQuotesClient(t, newFakeBin())

	quotes, err := c.FetchQuotesByCategory(context.Background(), "Nothing")

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotesClient_FetchQuotesByCategory_RejectedWithoutRequest(t *testing.T) {
	bin := newFakeBin()
	c := newQuotesClient(t, bin)

	_, err := c.FetchQuotesByCategory(context.Background(), "Life\r\nX-Evil: 1")

	assert.True(t, domain.IsValidation(err))
	assert.Zero(t, bin.requests.Load())
}

func TestQuotesClient_FetchCategoryNames(t *testing.T) {
	bin := newFakeBin()
	c := newQuotesClient(t, bin)

	names, err := c.FetchCategoryNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "quotes..category", bin.lastFilter())
	assert.Equal(t, []string{"Life", "Success", "Life"}, names)
}

func TestQuotesClient_CustomFilterHeader(t *testing.T) {
	var got string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Filter-Path")
		_, _ = w.Write([]byte(`["Life"]`))
	}))
	t.Cleanup(server.Close)

	httpClient, err := clients.New(testConfig(server.URL))
	require.NoError(t, err)

	c := NewQuotesClient(QuotesClientConfig{Client: httpClient, FilterHeader: "X-Filter-Path"})

	_, err = c.FetchCategoryNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "quotes..category", got)
}

func TestQuotesClient_DecodeFailures(t *testing.T) {
	fetchAll := func(c *QuotesClient) (any, error) { return c.FetchAllQuotes(context.Background()) }
	fetchNames := func(c *QuotesClient) (any, error) { return c.FetchCategoryNames(context.Background()) }

	tests := []struct {
		name   string
		filter string
		body   string
		fetch  func(*QuotesClient) (any, error)
	}{
		{"missing quotes key", "", `{"items":[]}`, fetchAll},
		{"null document", "", `null`, fetchAll},
		{"missing field", "", `{"quotes":[{"author":"A","category":"Life","text":"t"}]}`, fetchAll},
		{"unknown field", "", `{"quotes":[{"author":"A","category":"Life","categoryImage":"u","text":"t","likes":3}]}`, fetchAll},
		{"wrong type", "", `{"quotes":[{"author":1,"category":"Life","categoryImage":"u","text":"t"}]}`, fetchAll},
		{"null record", "", `{"quotes":[null]}`, fetchAll},
		{"truncated", "", `{"quotes":[`, fetchAll},
		{"null category name", CategoryNamesFilter, `[null,"Life",null]`, fetchNames},
		{"non-string category name", CategoryNamesFilter, `["Life",7]`, fetchNames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bin := newFakeBin()
			bin.bodies[tt.filter] = tt.body
			c := newQuotesClient(t, bin)

			got, err := tt.fetch(c)

			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, domain.IsDecode(err), "expected decode error, got %v", err)
			assert.Equal(t, domain.FailureDecode, domain.ClassifyFailure(err))
		})
	}
}

func TestQuotesClient_ToleratesExtraRootKeys(t *testing.T) {
	bin := newFakeBin()
	bin.bodies[""] = `{"version":2,"quotes":[]}`
	c := newQuotesClient(t, bin)

	quotes, err := c.FetchAllQuotes(context.Background())

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotesClient_EmptyStringFieldsAccepted(t *testing.T) {
	bin := newFakeBin()
	bin.bodies[""] = `{"quotes":[{"author":"","category":"Life","categoryImage":"","text":"t"}]}`
	c := newQuotesClient(t, bin)

	quotes, err := c.FetchAllQuotes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{{Category: "Life", Text: "t"}}, quotes)
}

func TestQuotesClient_StatusMapping(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		bin := newFakeBin()
		bin.status.Store(http.StatusNotFound)
		c := newQuotesClient(t, bin)

		_, err := c.FetchCategoryNames(context.Background())

		assert.True(t, domain.IsNotFound(err))
		assert.Equal(t, domain.FailureTransport, domain.ClassifyFailure(err))
	})

	t.Run("server error", func(t *testing.T) {
		bin := newFakeBin()
		bin.status.Store(http.StatusBadGateway)
		c := newQuotesClient(t, bin)

		_, err := c.FetchAllQuotes(context.Background())

		assert.True(t, domain.IsUnavailable(err))
	})
}

func TestQuotesClient_Check(t *testing.T) {
	bin := newFakeBin()
	c := newQuotesClient(t, bin)

	require.NoError(t, c.Check(context.Background()))
	assert.Equal(t, CategoryNamesFilter, bin.lastFilter())

	bin.status.Store(http.StatusServiceUnavailable)

	assert.Error(t, c.Check(context.Background()))
}
