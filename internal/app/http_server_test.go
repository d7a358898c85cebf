package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	healthcheck "github.com/vladislavdragonenkov/posledger/internal/health"
	"github.com/vladislavdragonenkov/posledger/internal/metrics"
	"github.com/vladislavdragonenkov/posledger/internal/version"
)

// startOpsServer поднимает metrics-сервер на свободном порту и ждёт /livez.
func startOpsServer(t *testing.T, handler *healthcheck.Handler) (string, context.CancelFunc) {
	t.Helper()

	addr := freeAddr(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	srv := startMetricsServer(ctx, addr, log.WithField("test", t.Name()), handler)
	require.NotNil(t, srv)
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/livez")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond, "metrics server did not start on %s", addr)

	return "http://" + addr, cancel
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestMetricsServer_ExposesLedgerMetrics(t *testing.T) {
	metrics.NewLedgerMetrics().RecordSaleCreated("Cash", 2750)

	base, _ := startOpsServer(t, healthcheck.NewHandler(version.Current().Version))

	code, body := get(t, base+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `pos_sales_created_total{payment_method="Cash"}`)
	assert.Contains(t, body, "pos_sales_revenue_cents_total")

	code, body = get(t, base+"/livez")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestMetricsServer_HealthReportsBuild(t *testing.T) {
	handler := healthcheck.NewHandler(version.Current().Version)
	handler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func(context.Context) error { return nil }))
	base, _ := startOpsServer(t, handler)

	code, body := get(t, base+"/healthz")
	require.Equal(t, http.StatusOK, code)

	var report healthcheck.Response
	require.NoError(t, json.Unmarshal([]byte(body), &report))
	assert.Equal(t, "dev", report.Version)
	assert.Contains(t, report.Checks, "storage")

	code, _ = get(t, base+"/readyz")
	assert.Equal(t, http.StatusOK, code)
}

func TestMetricsServer_ReadyzReflectsStorage(t *testing.T) {
	handler := healthcheck.NewHandler(version.Current().Version)
	handler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func(context.Context) error {
		return errors.New("database is locked")
	}))
	base, _ := startOpsServer(t, handler)

	for path, want := range map[string]int{
		"/readyz":  http.StatusServiceUnavailable,
		"/healthz": http.StatusServiceUnavailable,
		"/livez":   http.StatusOK,
	} {
		code, _ := get(t, base+path)
		assert.Equal(t, want, code, path)
	}
}

func TestMetricsServer_StopsWithContext(t *testing.T) {
	base, cancel := startOpsServer(t, healthcheck.NewHandler(version.Current().Version))

	cancel()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + "/livez")
		if err != nil {
			return true
		}
		resp.Body.Close()
		return false
	}, 2*time.Second, 20*time.Millisecond, "metrics server still serving after cancel")
}

func TestMetricsServer_PortTakenDoesNotPanic(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := startMetricsServer(ctx, lis.Addr().String(), log.WithField("test", "busy"), healthcheck.NewHandler("dev"))
	assert.NotNil(t, srv)
}

func TestShutdownHTTP(t *testing.T) {
	shutdownHTTP(nil, log.WithField("test", "nil"))

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})}
	go func() { _ = srv.Serve(lis) }()

	url := "http://" + lis.Addr().String() + "/"
	code, _ := get(t, url)
	require.Equal(t, http.StatusNoContent, code)

	shutdownHTTP(srv, log.WithField("test", "shutdown"))

	_, err = http.Get(url)
	assert.Error(t, err)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return lis.Addr().String()
}

func findFreePort(t *testing.T) int {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()
	return lis.Addr().(*net.TCPAddr).Port
}
