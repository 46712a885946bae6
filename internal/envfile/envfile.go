// Where: internal/envfile/envfile.go
// What: Env file loading and client build environment assembly.
// Why: Feed container env and front-end builds from .env.* files.
package envfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Variables the front-end build must not see so generated URLs stay relative.
// Multi-tenant routing relies on the browser origin instead of baked-in hosts.
const (
	WebClientURLVar = "WASP_WEB_CLIENT_URL"
	ServerURLVar    = "WASP_SERVER_URL"
)

// Load reads an env file into a key/value map. Comment lines and inline
// comments are excluded by the parser.
func Load(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return vars, nil
}

// Environ flattens a variable map into KEY=VALUE form, sorted for stable
// container configuration.
func Environ(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for key, value := range vars {
		out = append(out, key+"="+value)
	}
	sort.Strings(out)
	return out
}

// ClientBuildEnv merges file variables over the base process environment and
// strips WASP_WEB_CLIENT_URL and WASP_SERVER_URL regardless of where they
// were set.
func ClientBuildEnv(base []string, vars map[string]string) []string {
	merged := make(map[string]string, len(base)+len(vars))
	for _, entry := range base {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		merged[key] = value
	}
	for key, value := range vars {
		merged[key] = value
	}
	delete(merged, WebClientURLVar)
	delete(merged, ServerURLVar)
	return Environ(merged)
}
