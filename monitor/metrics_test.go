package monitor

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hemtjan.st/solarmax/maxcomm"
)

func TestObserveExchange(t *testing.T) {
	m := New()
	m.ObserveExchange(1, 100*time.Millisecond, nil)
	m.ObserveExchange(1, time.Second, nil)
	m.ObserveExchange(1, 3*time.Second, maxcomm.ErrNoReply)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Exchanges.WithLabelValues("1", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exchanges.WithLabelValues("1", "no_reply")))
}

func TestResult(t *testing.T) {
	_, err := maxcomm.Unmarshal(maxcomm.DefaultRegistry(), "{FB;00;18|64:PDC=0|04A8}")
	require.Error(t, err)

	assert.Equal(t, "ok", Result(nil))
	assert.Equal(t, "checksum", Result(err))
	assert.Equal(t, "unknown_field", Result(fmt.Errorf("wrapped: %w", maxcomm.ErrUnknownField)))
	assert.Equal(t, "error", Result(io.ErrUnexpectedEOF))
}

func TestRecord(t *testing.T) {
	reg := maxcomm.DefaultRegistry()
	p, err := maxcomm.Unmarshal(reg, "{01;FB;21|64:SYS=4e2c;SAL=5|0755}{01;FB;28|64:PAC=2d;KDY=1f;UDC=c2a|094D}")
	require.NoError(t, err)

	m := New()
	m.Record(1, p)
	m.SetOnline(1, true)

	assert.Equal(t, 22.5, testutil.ToFloat64(m.Values.WithLabelValues("1", "PAC", "W")))
	assert.Equal(t, 311.4, testutil.ToFloat64(m.Values.WithLabelValues("1", "UDC", "V")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Online))
	// Lookup fields are not numeric
	assert.Equal(t, 3, testutil.CollectAndCount(m.Values))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetOnline(2, false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `solarmax_device_online{device="2"} 0`))
}
