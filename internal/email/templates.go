package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderAssignmentTemplate(data AssignmentEmailData) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "assignment.html", data); err != nil {
		return "", fmt.Errorf("render assignment email: %w", err)
	}
	return buf.String(), nil
}
