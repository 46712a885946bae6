// Where: internal/scaffold/scaffold.go
// What: Project file scaffolding from embedded templates.
// Why: Give new projects a working config, client image, and nginx setup.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/waspdock/waspdock/internal/config"
	"github.com/waspdock/waspdock/internal/fileops"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Data is the template context for scaffolded files.
type Data struct {
	config.Config
	// NginxTag overrides the nginx base image tag; templates default it.
	NginxTag string
}

// Generate writes waspdock.yml, the client Dockerfile, and nginx.conf into
// the project directory. Existing files are skipped unless force is set.
// Returns the paths written.
func Generate(projectDir string, data Data, force bool) ([]string, error) {
	files := []struct {
		target   string
		template string
	}{
		{config.DefaultFileName, "waspdock.yml.tmpl"},
		{data.Client.Dockerfile, "Dockerfile.client.tmpl"},
		{"nginx.conf", "nginx.conf.tmpl"},
	}

	var written []string
	for _, file := range files {
		target := filepath.Join(projectDir, file.target)
		if !force && fileops.FileExists(target) {
			continue
		}
		content, err := render(file.template, data)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}
	return written, nil
}

func render(name string, data Data) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}
