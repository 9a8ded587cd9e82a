package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command against srv and returns stdout.
func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--url", srv.URL}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
	assert.Equal(t, "lo", truncate("longerstring", 2))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1})

	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}

func TestConsistencyPassed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ledger/consistency", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountCount":2,"transactionCount":5,"initialTotal":"100","balanceTotal":"90","destroyed":"10","issues":[],"ok":true}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv, "ledger", "consistency")

	require.NoError(t, err)
	assert.Contains(t, out, "Accounts: 2  Transactions: 5")
	assert.Contains(t, out, "Destroyed: 10.00")
	assert.Contains(t, out, "PASSED")
}

func TestConsistencyFailedListsIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"accountCount":1,"transactionCount":1,"initialTotal":"0","balanceTotal":"5","destroyed":"0","issues":[{"kind":"dangling_account","transactionId":"t1","detail":"account a9 missing"}],"ok":false}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv, "ledger", "consistency")

	assert.ErrorIs(t, err, errInconsistent)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "[dangling_account] t1 account a9 missing")
}

func TestBalances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts/balances", r.URL.Path)
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("asOf"))
		_, _ = w.Write([]byte(`{"accounts":[{"id":"a1","name":"Cash","balance":"12.5"}],"total":"12.5"}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv, "accounts", "balances", "--as-of", "2026-01-31")

	require.NoError(t, err)
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "TOTAL")
}

func TestMaterialize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/recurring/materialize", r.URL.Path)
		_, _ = w.Write([]byte(`{"created":[{"id":"t1"},{"id":"t2"}],"rulesUpdated":1}`))
	}))
	defer srv.Close()

	out, err := execute(t, srv, "recurring", "materialize")

	require.NoError(t, err)
	assert.Equal(t, "Created 2 transactions, advanced 1 rules\n", out)
}

func TestMaterializeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"conflict","message":"recurring materialization already in progress"}`))
	}))
	defer srv.Close()

	_, err := execute(t, srv, "recurring", "materialize")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 409")
	assert.Contains(t, err.Error(), "already in progress")
}

func TestExportCSVPassesPeriod(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/reports/csv", r.URL.Path)
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("end"))
		_, _ = w.Write([]byte("Date,Type\n"))
	}))
	defer srv.Close()

	out, err := execute(t, srv, "data", "export", "--format", "csv", "--start", "2026-01-01", "--end", "2026-01-31")

	require.NoError(t, err)
	assert.Equal(t, "Date,Type\n", out)
}

func TestExportJSONToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/data/export", r.URL.Path)
		_, _ = w.Write([]byte(`{"transactions":[]}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "export.json")
	_, err := execute(t, srv, "data", "export", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions":[]}`, string(data))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := execute(t, srv, "data", "export", "--format", "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestImportPostsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"accounts":[]}`, string(body))
		_, _ = w.Write([]byte(`{"transactions":0,"accounts":0}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"accounts":[]}`), 0o600))

	out, err := execute(t, srv, "data", "import", path)

	require.NoError(t, err)
	assert.JSONEq(t, `{"transactions":0,"accounts":0}`, out)
}
