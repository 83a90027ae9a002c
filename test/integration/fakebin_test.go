//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/quotes-client/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotes-client/internal/domain"
)

const (
	fakeBinID        = "integrationbin"
	fakeFilterHeader = "X-JSON-Path"
)

var categoryFilterPattern = regexp.MustCompile(`^quotes\[\?\(@\.category=="(.*)"\)\]$`)

var filterUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`)

// fakeBin serves one quotes document the way JSONBin does, evaluating the
// three filters the client sends.
type fakeBin struct {
	server *httptest.Server

	mu       sync.Mutex
	quotes   []domain.Quote
	status   int
	delay    time.Duration
	requests []http.Header
}

func newFakeBin() *fakeBin {
	b := &fakeBin{status: http.StatusOK}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))

	return b
}

func (b *fakeBin) URL() string {
	return b.server.URL
}

func (b *fakeBin) Close() {
	b.server.Close()
}

func (b *fakeBin) setQuotes(quotes []domain.Quote) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.quotes = quotes
}

func (b *fakeBin) setStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.status = status
}

func (b *fakeBin) setDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.delay = d
}

// requestsFiltered counts the requests that carried filter.
func (b *fakeBin) requestsFiltered(filter string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, h := range b.requests {
		if h.Get(fakeFilterHeader) == filter {
			n++
		}
	}

	return n
}

// lastHeader returns the headers of the most recent request.
func (b *fakeBin) lastHeader() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.requests) == 0 {
		return nil
	}

	return b.requests[len(b.requests)-1]
}

func (b *fakeBin) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Header.Clone())
	quotes := append([]domain.Quote(nil), b.quotes...)
	status, delay := b.status, b.delay
	b.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if r.URL.Path != "/v3/b/"+fakeBinID {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Bin not found or it doesn't belong to your account"}`))

		return
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"message":"unavailable"}`))

		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(evaluate(r.Header.Get(fakeFilterHeader), quotes))
}

func evaluate(filter string, quotes []domain.Quote) any {
	if filter == "" {
		return map[string]any{"quotes": wireQuotes(quotes)}
	}

	if filter == acl.CategoryNamesFilter {
		names := make([]string, 0, len(quotes))
		for _, q := range quotes {
			names = append(names, q.Category)
		}

		return names
	}

	match := categoryFilterPattern.FindStringSubmatch(filter)
	if match == nil {
		return []any{}
	}

	category := filterUnescaper.Replace(match[1])

	var selected []domain.Quote
	for _, q := range quotes {
		if q.Category == category {
			selected = append(selected, q)
		}
	}

	return wireQuotes(selected)
}

func wireQuotes(quotes []domain.Quote) []map[string]string {
	out := make([]map[string]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, map[string]string{
			"author":        q.Author,
			"category":      q.Category,
			"categoryImage": q.CategoryImage,
			"text":          q.Text,
		})
	}

	return out
}
