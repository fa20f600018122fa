package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/request_blood/:donor_id", func(c echo.Context) error { return c.NoContent(http.StatusFound) })
	e.GET("/boom", func(c echo.Context) error { return errors.New("boom") })
	e.GET("/denied", func(c echo.Context) error { return echo.NewHTTPError(http.StatusForbidden) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/request_blood/:donor_id", "302"))
	for _, p := range []string{"/request_blood/1", "/request_blood/2"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/request_blood/:donor_id", "302"))
	require.Equal(t, before+2, after)

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/boom", "500")))

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/denied", nil))
	require.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/denied", "403")))
}

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(requestsCreated)
	RecordRequestCreated()
	require.Equal(t, before+1, testutil.ToFloat64(requestsCreated))

	RecordTransition("accepted")
	require.GreaterOrEqual(t, testutil.ToFloat64(transitions.WithLabelValues("accepted")), 1.0)

	RecordNotification("email", "failed")
	require.GreaterOrEqual(t, testutil.ToFloat64(notifications.WithLabelValues("email", "failed")), 1.0)

	p := testutil.ToFloat64(realtimePeers)
	PeerConnected()
	PeerDisconnected()
	require.Equal(t, p, testutil.ToFloat64(realtimePeers))
}

func TestHandler(t *testing.T) {
	RecordRequestCreated()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	require.Contains(t, string(body), "medisecure_blood_requests_created_total")
}
