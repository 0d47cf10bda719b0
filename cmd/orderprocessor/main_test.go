package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/orderprocessor/internal/testutil"
)

func Test_run(t *testing.T) {
	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	noenv := func(string) string { return "" }
	wd := func() (string, error) { return t.TempDir(), nil }

	// Start the service in background, return its url and the channel with run result
	start := func(t *testing.T, ctx context.Context, args ...string) (string, <-chan error) {
		port, err := testutil.RandomPort()
		require.NoError(t, err, "failed to get random port to start server")
		listenAddr := fmt.Sprintf("localhost:%d", port)

		done := make(chan error, 1)
		go func() {
			done <- run(ctx, noenv, wd, append([]string{
				"--address", listenAddr,
				"--log-level", "debug",
				"--environment", "dev",
				"--database", pg.DSN,
			}, args...))
		}()

		url := "http://" + listenAddr
		require.Eventually(t, func() bool {
			resp, err := http.Get(url + "/metrics")
			if err != nil {
				return false
			}
			_ = resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}, 10*time.Second, 50*time.Millisecond, "server not started")

		return url, done
	}

	post := func(t *testing.T, url string, body string) (int, string) {
		resp, err := http.Post(url, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close() // nolint:errcheck
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(b)
	}

	t.Run("stop with context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		_, done := start(t, ctx)

		cancel()

		select {
		case err := <-done:
			require.NoError(t, err, "on correct stop should not return error")
		case <-time.After(10 * time.Second):
			t.Fatal("service not stopped")
		}
	})

	t.Run("fail without database", func(t *testing.T) {
		err := run(t.Context(), noenv, wd, []string{"--export-format", "csv"})

		require.Error(t, err, "must fail if database not set")
	})

	t.Run("process orders", func(t *testing.T) {
		classifierSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status": "success", "data": 75}`))
		}))
		t.Cleanup(classifierSrv.Close)
		exportDir := t.TempDir()

		ctx, cancel := context.WithCancel(t.Context())
		url, done := start(t, ctx,
			"--classifier", classifierSrv.URL,
			"--export-dir", exportDir,
		)
		t.Cleanup(func() {
			cancel()
			<-done
		})

		for _, body := range []string{
			`{"user_id": 42, "type": "A", "amount": 250}`,
			`{"user_id": 42, "type": "B", "amount": 80}`,
			`{"user_id": 42, "type": "C", "amount": 10, "flag": true}`,
			`{"user_id": 42, "type": "Q", "amount": 1}`,
		} {
			code, resp := post(t, url+"/api/orders", body)
			require.Equalf(t, http.StatusCreated, code, "order not created: %s", resp)
		}

		code, resp := post(t, url+"/api/orders/process", `{"user_id": 42}`)

		require.Equalf(t, http.StatusOK, code, "body: %s", resp)
		require.Contains(t, resp, `"status":"exported","priority":"high"`)
		require.Contains(t, resp, `"status":"processed","priority":"low"`)
		require.Contains(t, resp, `"status":"completed","priority":"low"`)
		require.Contains(t, resp, `"status":"unknown_type","priority":"low"`)

		exports, err := filepath.Glob(filepath.Join(exportDir, "orders_type_A_42_*.csv"))
		require.NoError(t, err)
		require.Len(t, exports, 1)
		content, err := os.ReadFile(exports[0])
		require.NoError(t, err)
		require.Contains(t, string(content), "High value order")

		// Statuses are stored
		listResp, err := http.Get(url + "/api/users/42/orders")
		require.NoError(t, err)
		defer listResp.Body.Close() // nolint:errcheck
		listed, err := io.ReadAll(listResp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, listResp.StatusCode)
		require.Contains(t, string(listed), `"status":"processed"`)
	})
}
