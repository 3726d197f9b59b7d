// Package resources exposes the Limelink documentation as MCP resources.
package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"limelink-mcp/internal/docs"
)

const (
	uriPrefix   = "limelink://docs/"
	IndexURI    = uriPrefix + "index"
	PageURITmpl = uriPrefix + "{slug}"

	mimeText     = "text/plain"
	mimeMarkdown = "text/markdown"
)

// DocSource is the part of docs.Fetcher the resources read from.
type DocSource interface {
	FetchIndex(ctx context.Context) (string, error)
	FetchDoc(ctx context.Context, slug string) (string, error)
}

type Docs struct {
	src DocSource
}

func NewDocs(src DocSource) *Docs {
	return &Docs{src: src}
}

// Register adds the index, one listed resource per slug and the page
// template to s.
func (d *Docs) Register(s *server.MCPServer) {
	s.AddResource(
		mcp.NewResource(IndexURI, "docs-index",
			mcp.WithResourceDescription("Limelink documentation index (llms.txt) listing all available documentation pages"),
			mcp.WithMIMEType(mimeText),
		),
		d.ReadIndex,
	)

	for _, slug := range docs.ValidSlugs() {
		s.AddResource(
			mcp.NewResource(PageURI(slug), "Limelink Docs: "+slug,
				mcp.WithResourceDescription("Documentation page for "+slug),
				mcp.WithMIMEType(mimeMarkdown),
			),
			d.ReadPage,
		)
	}

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(PageURITmpl, "docs-page",
			mcp.WithTemplateDescription("Individual Limelink documentation page by slug"),
			mcp.WithTemplateMIMEType(mimeMarkdown),
		),
		d.ReadPage,
	)
}

func PageURI(slug string) string {
	return uriPrefix + slug
}

// ReadIndex serves limelink://docs/index.
func (d *Docs) ReadIndex(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := d.src.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: mimeText, Text: text},
	}, nil
}

// ReadPage serves limelink://docs/<slug>. Unknown slugs fail with
// docs.InvalidSlugError before anything is fetched.
func (d *Docs) ReadPage(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	slug, ok := strings.CutPrefix(req.Params.URI, uriPrefix)
	if !ok {
		return nil, fmt.Errorf("unsupported resource uri %q", req.Params.URI)
	}

	text, err := d.src.FetchDoc(ctx, slug)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: req.Params.URI, MIMEType: mimeMarkdown, Text: text},
	}, nil
}
