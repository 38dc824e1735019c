package chat

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/index.html
var templatesFS embed.FS

// PageData fills the chat page template.
type PageData struct {
	Title      string
	Greeting   string
	BotIconURL string
}

// Page is the chat UI shell. It is rendered once and served as-is on every request.
type Page struct {
	body []byte
}

// NewPage renders the embedded template with data.
func NewPage(data PageData) (*Page, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse page template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("could not render page template: %w", err)
	}
	return &Page{body: buf.Bytes()}, nil
}

func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(p.body)
}
