package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metricLoop:
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue metricLoop
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/products/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	labels := map[string]string{"method": "GET", "route": "/api/products/:slug", "status": "200"}
	before := counterValue(t, "shop_http_requests_total", labels)

	for _, slug := range []string{"plate", "kurtka"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products/"+slug, nil))
	}

	if got := counterValue(t, "shop_http_requests_total", labels) - before; got != 2 {
		t.Fatalf("requests counted = %v, want 2", got)
	}
}

func TestRecordersAndHandler(t *testing.T) {
	RecordOrderPlaced("courier", "cash", 1500)
	RecordCheckoutFailure("out_of_stock")
	RecordJobRun("purge_guest_cart", 3, nil)

	if v := counterValue(t, "shop_jobs_removed_rows_total", map[string]string{"job": "purge_guest_cart"}); v < 3 {
		t.Fatalf("removed rows = %v, want >= 3", v)
	}

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "shop_orders_placed_total") {
		t.Fatal("metrics output should include order counter")
	}
}
