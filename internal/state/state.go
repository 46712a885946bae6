// Where: internal/state/state.go
// What: Last-deploy record persistence.
// Why: Let status report when and how the host was last deployed.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const stateDirName = ".waspdock"

// Record captures the outcome of the most recent deploy.
type Record struct {
	App         string    `json:"app"`
	Time        time.Time `json:"time"`
	Outcome     string    `json:"outcome"`
	FailedStep  string    `json:"failed_step,omitempty"`
	ServerImage string    `json:"server_image"`
	ClientImage string    `json:"client_image"`
}

// Save writes the record under <projectDir>/.waspdock/deploy.json.
func Save(projectDir string, rec Record) error {
	path := recordPath(projectDir)
	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// Load reads the last-deploy record. The second return value reports
// whether a record exists.
func Load(projectDir string) (Record, bool, error) {
	payload, err := os.ReadFile(recordPath(projectDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func recordPath(projectDir string) string {
	return filepath.Join(projectDir, stateDirName, "deploy.json")
}
