package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New("test")

	m.LineItemAdded()
	m.LineItemAdded()
	m.InvoiceGenerated("ok")
	m.CatalogRefreshed("degraded")
	m.SetOpenBills(3)
	m.ObserveRequest("GET", "/api/products", "200", 12*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LineItemsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvoicesGenerated.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogRefreshes.WithLabelValues("degraded")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OpenBills))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReqTotal.WithLabelValues("GET", "/api/products", "200")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.LineItemAdded()
		m.InvoiceGenerated("ok")
		m.CatalogRefreshed("ok")
		m.SetOpenBills(1)
		m.ObserveRequest("GET", "/", "200", time.Millisecond)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetrics_Handler(t *testing.T) {
	m := New("prodexa")
	m.LineItemAdded()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "prodexa_bill_line_items_added_total 1")
}
