package mailservice

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*
var templateFS embed.FS

// NewTemplate parses every known email template so a broken file fails at startup, not on the first send.
func NewTemplate() (*Template, error) {
	tp := &Template{set: make(map[TemplateName]*template.Template, len(templateNames))}

	for _, name := range templateNames {
		t, err := template.New("email").ParseFS(templateFS, "templates/"+string(name))
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}
		tp.set[name] = t
	}

	return tp, nil
}

// Render executes the subject, plainBody and htmlBody blocks of the named template with data.
func (tp *Template) Render(name TemplateName, data any) (*email, error) {
	t, ok := tp.set[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %s", name)
	}

	var e email
	for _, part := range []struct {
		block string
		dst   *string
	}{
		{"subject", &e.subject},
		{"plainBody", &e.plainBody},
		{"htmlBody", &e.htmlBody},
	} {
		var sb strings.Builder
		if err := t.ExecuteTemplate(&sb, part.block, data); err != nil {
			return nil, fmt.Errorf("could not render %s of %s: %w", part.block, name, err)
		}
		*part.dst = sb.String()
	}

	e.subject = strings.TrimSpace(e.subject)

	return &e, nil
}
