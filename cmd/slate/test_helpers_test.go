package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath string
	dataDir    string
	catalog    *fakeCatalogServer
}

// fakeCatalogServer serves just enough of the TMDB TV API for the CLI
// commands under test.
type fakeCatalogServer struct {
	server  *httptest.Server
	shows   map[int64]map[string]any
	seasons map[string][]map[string]any
	results []map[string]any
}

func newFakeCatalogServer(t *testing.T) *fakeCatalogServer {
	t.Helper()
	f := &fakeCatalogServer{
		shows:   make(map[int64]map[string]any),
		seasons: make(map[string][]map[string]any),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/search/tv":
			writeJSON(w, map[string]any{"page": 1, "results": f.results})
		case strings.Contains(r.URL.Path, "/season/"):
			episodes, ok := f.seasons[strings.TrimPrefix(r.URL.Path, "/tv/")]
			if !ok {
				http.NotFound(w, r)
				return
			}
			writeJSON(w, map[string]any{"episodes": episodes})
		case strings.HasPrefix(r.URL.Path, "/tv/"):
			var showID int64
			if _, err := fmt.Sscanf(r.URL.Path, "/tv/%d", &showID); err != nil {
				http.NotFound(w, r)
				return
			}
			show, ok := f.shows[showID]
			if !ok {
				http.NotFound(w, r)
				return
			}
			writeJSON(w, show)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCatalogServer) addEndedShow(id int64, title string, runtime int) {
	f.shows[id] = map[string]any{
		"id":                 id,
		"name":               title,
		"genres":             []map[string]any{{"id": 1, "name": "Drama"}},
		"episode_run_time":   []int{runtime},
		"number_of_seasons":  1,
		"number_of_episodes": 8,
		"status":             "Ended",
		"in_production":      false,
	}
	f.results = append(f.results, map[string]any{
		"id":             id,
		"name":           title,
		"first_air_date": "2020-01-01",
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	catalogServer := newFakeCatalogServer(t)

	dataDir := filepath.Join(base, "data")
	logDir := filepath.Join(base, "logs")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[catalog]
api_key = "test-key"
base_url = %q

[scheduling]
default_horizon_days = 7
`, dataDir, logDir, catalogServer.server.URL)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		configPath: configPath,
		dataDir:    dataDir,
		catalog:    catalogServer,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, err := runCLI(t, env, args...)
	if err != nil {
		t.Fatalf("slate %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("expected output to contain %q, got:\n%s", want, output)
	}
}
