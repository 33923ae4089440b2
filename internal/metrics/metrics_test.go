package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func scrape(t *testing.T) string {
	t.Helper()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	return rr.Body.String()
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/books/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	Middleware(mux).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/books/42", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t)
	assert.Contains(t, body, `path="GET /api/v1/books/{id}"`)
	assert.NotContains(t, body, `path="/api/v1/books/42"`)
}

func TestCounters(t *testing.T) {
	RecordCheckout(CheckoutOutOfStock)
	RecordPublishFailure("order.placed")
	RecordNotification("user.registered", "sent")

	body := scrape(t)
	assert.Contains(t, body, `bookstore_checkouts_total{outcome="out_of_stock"}`)
	assert.Contains(t, body, `bookstore_event_publish_failures_total{type="order.placed"}`)
	assert.Contains(t, body, `bookstore_notifications_total{status="sent",type="user.registered"}`)
}

func TestCacheLookups(t *testing.T) {
	RecordCacheLookup("books:list", CacheHit)
	RecordCacheLookup("books:list", CacheMiss)

	body := scrape(t)
	assert.Contains(t, body, `bookstore_cache_lookups_total{prefix="books:list",result="hit"}`)
	assert.Contains(t, body, `bookstore_cache_lookups_total{prefix="books:list",result="miss"}`)
}

func TestMiddlewareUnmatchedRoute(t *testing.T) {
	mux := http.NewServeMux()

	rr := httptest.NewRecorder()
	Middleware(mux).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, scrape(t), `http_requests_total{code="404",method="GET",path="unmatched"}`)
}
