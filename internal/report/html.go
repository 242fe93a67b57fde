// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"html/template"
	"os"
	"strings"
)

// htmlPage wraps the markdown content in a minimal styled page. The content
// stays preformatted text; this rendering carries no semantics of its own.
var htmlPage = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Congressional Data Update Report</title>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; }
  pre { background-color: #f8f8f8; padding: 10px; border-radius: 5px; overflow-x: auto; }
</style>
</head>
<body>
<pre>{{.}}</pre>
</body>
</html>
`))

// RenderHTML writes an HTML rendering of a markdown report next to it,
// returning the new path.
func (b *Builder) RenderHTML(markdownPath string) (string, error) {
	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("reading report %s: %w", markdownPath, err)
	}

	htmlPath := strings.TrimSuffix(markdownPath, ".md") + ".html"
	f, err := os.Create(htmlPath)
	if err != nil {
		return "", fmt.Errorf("creating HTML report: %w", err)
	}
	if err := htmlPage.Execute(f, string(content)); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering HTML report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing HTML report: %w", err)
	}
	return htmlPath, nil
}
