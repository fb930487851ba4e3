// Package report renders the canonical quotation record into a fixed-layout
// PDF through Gotenberg. Rendering is a pure consumer of the record: every
// value it prints was computed upstream, never re-derived here.
package report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/construinmuniza/cotizador/internal/money"
	"github.com/construinmuniza/cotizador/internal/quote"
)

//go:embed templates/quotation_pdf.html
var templatesFS embed.FS

// Renderer wraps Gotenberg interactions for quotation PDF generation.
type Renderer struct {
	endpoint   string
	httpClient *http.Client
	templates  *template.Template
}

// NewRenderer parses the quotation template and returns a renderer bound to
// the given Gotenberg endpoint.
func NewRenderer(endpoint string, client *http.Client) (*Renderer, error) {
	funcMap := template.FuncMap{
		"money":      money.Format,
		"formatDate": func(t time.Time) string { return t.Format("02/01/2006") },
		"yesNo": func(v bool) string {
			if v {
				return "Sí"
			}
			return "No"
		},
		"truncate": func(n int, s string) string {
			if len(s) <= n {
				return s
			}
			return s[:n]
		},
	}

	tpl, err := template.New("quotation_pdf.html").Funcs(funcMap).ParseFS(
		templatesFS, "templates/quotation_pdf.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse quotation template: %w", err)
	}

	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Renderer{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: client,
		templates:  tpl,
	}, nil
}

// Ping checks if the remote Gotenberg service is available.
func (r *Renderer) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("gotenberg returned status %d", resp.StatusCode)
	}
	return nil
}

type templateData struct {
	Quotation  quote.Quotation
	Letterhead Letterhead
}

// BuildHTML renders the quotation document as HTML. Exposed separately so
// the layout is testable without a Gotenberg instance.
func (r *Renderer) BuildHTML(q quote.Quotation, lh Letterhead) (string, error) {
	buf := &bytes.Buffer{}
	data := templateData{Quotation: q, Letterhead: lh.merged()}
	if err := r.templates.ExecuteTemplate(buf, "quotation_pdf.html", data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// Render converts the quotation into PDF bytes via Gotenberg. A failure
// here is attributable to the rendering boundary; the record handed in is
// always complete.
func (r *Renderer) Render(ctx context.Context, q quote.Quotation, lh Letterhead) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer not initialized")
	}
	if r.endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}

	html, err := r.BuildHTML(q, lh)
	if err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("files", "quotation.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, html); err != nil {
		return nil, err
	}

	// A4 with 15mm margins.
	fields := map[string]string{
		"paperWidth":   "8.27",
		"paperHeight":  "11.69",
		"marginTop":    "0.59",
		"marginBottom": "0.59",
		"marginLeft":   "0.59",
		"marginRight":  "0.59",
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}
	return io.ReadAll(resp.Body)
}
