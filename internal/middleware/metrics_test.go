package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{method: method, path: path, status: status})
}

func newMetricsRouter(observer RequestObserver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(observer, "/metrics", "/health"))
	r.GET("/students/:id/grades", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r http.Handler, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	obs := &recordingObserver{}
	r := newMetricsRouter(obs)

	serve(r, "/students/stu1/grades")
	serve(r, "/students/stu2/grades")

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{method: http.MethodGet, path: "/students/:id/grades", status: http.StatusOK}, obs.seen[0])
	assert.Equal(t, obs.seen[0], obs.seen[1])
}

func TestMetricsSkipsProbeEndpoints(t *testing.T) {
	obs := &recordingObserver{}
	r := newMetricsRouter(obs)

	serve(r, "/metrics")
	serve(r, "/health")

	assert.Empty(t, obs.seen)
}

func TestMetricsCollapsesUnmatchedPaths(t *testing.T) {
	obs := &recordingObserver{}
	r := newMetricsRouter(obs)

	serve(r, "/does/not/exist")
	serve(r, "/another/unknown/path")

	require.Len(t, obs.seen, 2)
	for _, o := range obs.seen {
		assert.Equal(t, "unmatched", o.path)
		assert.Equal(t, http.StatusNotFound, o.status)
	}
}

func TestMetricsNilObserver(t *testing.T) {
	r := newMetricsRouter(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students/stu1/grades", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
