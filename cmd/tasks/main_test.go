package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasks/internal/model"
)

// taskServer is a minimal in-memory task service.
type taskServer struct {
	mu       sync.Mutex
	tasks    []map[string]any
	created  []string
	auth     []string
	failPOST bool
}

func (s *taskServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = append(s.auth, r.Header.Get("Authorization"))

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/tasks":
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.tasks)
	case r.Method == http.MethodPost && r.URL.Path == "/tasks":
		if s.failPOST {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"data":"boom"}`)
			return
		}
		var body struct {
			Desc string `json:"desc"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.created = append(s.created, body.Desc)
		w.WriteHeader(http.StatusCreated)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func setup(t *testing.T, srv *taskServer) string {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	cfg := "server:\n  base_url: " + ts.URL + "\nstorage:\n  db_path: " + filepath.Join(dir, "tasks.db") +
		"\nlog:\n  level: error\n  file: " + filepath.Join(dir, "tasks.log") + "\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))

	t.Setenv("TASKS_API_TOKEN", "secret")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type listOutput struct {
	Count int `json:"count"`
	Tasks []struct {
		ID   string `json:"id"`
		Done bool   `json:"done"`
	} `json:"tasks"`
}

func decodeList(t *testing.T, out string) listOutput {
	t.Helper()
	var lo listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &lo), out)
	return lo
}

func sampleServer() *taskServer {
	today := time.Now().Format("2006-01-02")
	return &taskServer{tasks: []map[string]any{
		{"id": 1, "desc": "Open", "estimateAt": today, "doneAt": nil},
		{"id": 2, "desc": "Closed", "estimateAt": today, "doneAt": time.Now().UTC().Format(time.RFC3339)},
	}}
}

func TestListJSON(t *testing.T) {
	srv := sampleServer()
	cfg := setup(t, srv)

	out, err := execute(t, "--config", cfg, "list", "--horizon", "week", "--json")
	require.NoError(t, err)

	lo := decodeList(t, out)
	assert.Equal(t, 2, lo.Count)
	assert.Equal(t, "1", lo.Tasks[0].ID)
	assert.True(t, lo.Tasks[1].Done)
	assert.Equal(t, "Bearer secret", srv.auth[0])
}

func TestFilterHidesDoneTasksInList(t *testing.T) {
	cfg := setup(t, sampleServer())

	out, err := execute(t, "--config", cfg, "filter")
	require.NoError(t, err)
	assert.Contains(t, out, "hidden")

	out, err = execute(t, "--config", cfg, "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, 1, decodeList(t, out).Count)

	out, err = execute(t, "--config", cfg, "list", "--json", "--all")
	require.NoError(t, err)
	assert.Equal(t, 2, decodeList(t, out).Count)

	out, err = execute(t, "--config", cfg, "filter", "--reset")
	require.NoError(t, err)
	assert.Contains(t, out, "shown")

	out, err = execute(t, "--config", cfg, "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, 2, decodeList(t, out).Count)
}

func TestAddTrimsAndJoinsArgs(t *testing.T) {
	srv := sampleServer()
	cfg := setup(t, srv)

	_, err := execute(t, "--config", cfg, "add", "  Buy", "milk  ", "--json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk"}, srv.created)
}

func TestAddBlankDescriptionFails(t *testing.T) {
	srv := sampleServer()
	cfg := setup(t, srv)

	_, err := execute(t, "--config", cfg, "add", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "description not provided")
	assert.Empty(t, srv.created)
}

func TestAddServerErrorIsReturned(t *testing.T) {
	srv := sampleServer()
	srv.failPOST = true
	cfg := setup(t, srv)

	_, err := execute(t, "--config", cfg, "add", "Buy milk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestListRejectsBadHorizon(t *testing.T) {
	cfg := setup(t, sampleServer())

	_, err := execute(t, "--config", cfg, "list", "--horizon", "someday")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.Server.BaseURL)

	_, err = execute(t, "--config", path, "config", "init")
	assert.Error(t, err)
	_, err = execute(t, "--config", path, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.Local)

	got, err := parseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.Local), got)

	got, err = parseDate("2026-10-20", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local), got)

	_, err = parseDate("20/10/2026", now)
	assert.Error(t, err)
}

func TestOutputHuman(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.Local)
	var buf bytes.Buffer

	require.NoError(t, printTasks(&buf, nil, now, false))
	assert.Equal(t, "Nothing due.\n", buf.String())

	buf.Reset()
	tasks := []model.Task{
		{ID: "7", Description: "Pay rent", EstimatedAt: now.AddDate(0, 0, -2)},
	}
	require.NoError(t, printTasks(&buf, tasks, now, false))
	assert.Contains(t, buf.String(), "Pay rent")
	assert.Contains(t, buf.String(), "overdue")
	assert.Contains(t, buf.String(), "[ ]")
}
