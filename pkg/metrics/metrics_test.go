package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		m := NewManager(WithNamespace("test"), WithHistogramBuckets([]float64{0.01, 0.1, 1}))

		Convey("When a run is observed", func() {
			m.ObserveRun("json", 21, 3, 87.5, 20*time.Millisecond)
			m.ObserveRun("csv", 4, 0, 100, time.Millisecond)

			Convey("Then the counters and gauge reflect it", func() {
				So(testutil.ToFloat64(m.scheduleRuns.WithLabelValues("json")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.slotsAssigned), ShouldEqual, 25)
				So(testutil.ToFloat64(m.slotsUnmet), ShouldEqual, 3)
				So(testutil.ToFloat64(m.fairnessScore), ShouldEqual, 100)
			})

			Convey("And the handler exposes them", func() {
				rec := httptest.NewRecorder()
				m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "test_slots_assigned_total 25")
			})
		})

		Convey("When requests pass through the gin middleware", func() {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(m.GinMiddleware())
			r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

			Convey("Then they are counted by route", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/ping", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.httpRequestDuration), ShouldEqual, 2)
			})
		})
	})
}
