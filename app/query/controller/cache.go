package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4/json"
)

// responseTTL bounds how stale a cached series page can get. The series
// only changes when the indexer writes a new change-point or the day rolls
// over, so a short TTL is plenty.
const responseTTL = 60 * time.Second

// cachedResponse returns a previously cached response body for this
// request, when response caching is enabled.
func (c *Controller) cachedResponse(ctx context.Context, r *http.Request) ([]byte, bool) {
	if c.App.Cache == nil {
		return nil, false
	}
	return c.App.Cache.Get(ctx, cacheKey(r))
}

// writeCachedJSON writes v as the JSON response and stores the serialized
// body in the response cache, best-effort.
func (c *Controller) writeCachedJSON(ctx context.Context, w http.ResponseWriter, r *http.Request, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}

	if c.App.Cache != nil {
		c.App.Cache.Set(ctx, cacheKey(r), body, responseTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func writeRawJSON(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func cacheKey(r *http.Request) string {
	return "resp:" + r.URL.RequestURI()
}
