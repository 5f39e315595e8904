// Package synopsis resolves the "Download Synopsis" action for a catalog
// project. The catalog itself does not know which document backs the action.
package synopsis

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodeVantage/codevantage-backend/internal/catalog/domain"
)

// Download is either a redirect to a stored document or an inline attachment.
type Download struct {
	RedirectURL string
	FileName    string
	ContentType string
	Body        []byte
}

type Resolver interface {
	Resolve(ctx context.Context, p domain.ProjectRecord) (Download, error)
}

// TextResolver renders a short plain-text synopsis from the record itself.
type TextResolver struct {
	Footer string
}

func NewTextResolver() *TextResolver {
	return &TextResolver{Footer: "Need help building this project? Contact CodeVantage."}
}

func (r *TextResolver) Resolve(_ context.Context, p domain.ProjectRecord) (Download, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", p.Title)
	b.WriteString(strings.Repeat("=", len(p.Title)))
	fmt.Fprintf(&b, "\n\nProject ID: %s\nDomain:     %s\nLanguage:   %s\n", p.ID, p.Domain, p.Language)
	if p.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.Description)
	}
	if r.Footer != "" {
		fmt.Fprintf(&b, "\n--\n%s\n", r.Footer)
	}

	return Download{
		FileName:    FileName(p, "txt"),
		ContentType: "text/plain; charset=utf-8",
		Body:        []byte(b.String()),
	}, nil
}

// FileName is the attachment name offered for a project's synopsis.
func FileName(p domain.ProjectRecord, ext string) string {
	return fmt.Sprintf("%s-synopsis.%s", p.ID, ext)
}
