// Where: internal/envfile/envfile_test.go
// What: Tests for env file loading and client build env assembly.
// Why: URL variables must never leak into the front-end build.
package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env.client")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExcludesCommentLines(t *testing.T) {
	path := writeEnvFile(t, "# leading comment\nDATABASE_URL=postgres://db:5432/app\n# SECRET=should-not-appear\nJWT_SECRET=abc\n")

	vars, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(vars) != 2 {
		t.Fatalf("expected 2 variables, got %d: %v", len(vars), vars)
	}
	if vars["DATABASE_URL"] != "postgres://db:5432/app" {
		t.Fatalf("unexpected DATABASE_URL: %q", vars["DATABASE_URL"])
	}
	if _, ok := vars["SECRET"]; ok {
		t.Fatal("commented variable leaked into the result")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestClientBuildEnvStripsURLVariables(t *testing.T) {
	base := []string{
		"PATH=/usr/bin",
		"WASP_WEB_CLIENT_URL=https://app.example.com",
	}
	vars := map[string]string{
		"WASP_SERVER_URL":     "https://api.example.com",
		"REACT_APP_ANALYTICS": "off",
	}

	env := ClientBuildEnv(base, vars)

	for _, entry := range env {
		switch {
		case entry == "PATH=/usr/bin", entry == "REACT_APP_ANALYTICS=off":
		default:
			if hasKey(entry, WebClientURLVar) || hasKey(entry, ServerURLVar) {
				t.Fatalf("URL variable leaked: %s", entry)
			}
		}
	}
	if len(env) != 2 {
		t.Fatalf("unexpected env: %v", env)
	}
}

func TestClientBuildEnvFileOverridesBase(t *testing.T) {
	base := []string{"NODE_ENV=development"}
	vars := map[string]string{"NODE_ENV": "production"}

	env := ClientBuildEnv(base, vars)
	if len(env) != 1 || env[0] != "NODE_ENV=production" {
		t.Fatalf("unexpected env: %v", env)
	}
}

func hasKey(entry, key string) bool {
	return len(entry) > len(key) && entry[:len(key)+1] == key+"="
}
