package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"limelink-mcp/internal/docs"
)

type fakeSource struct {
	index   string
	pages   map[string]string
	err     error
	fetched []string
}

func (f *fakeSource) FetchIndex(context.Context) (string, error) {
	f.fetched = append(f.fetched, "index")
	return f.index, f.err
}

func (f *fakeSource) FetchDoc(_ context.Context, slug string) (string, error) {
	if !docs.IsValidSlug(slug) {
		return "", &docs.InvalidSlugError{Slug: slug, Valid: docs.ValidSlugs()}
	}
	f.fetched = append(f.fetched, slug)
	if f.err != nil {
		return "", f.err
	}
	return f.pages[slug], nil
}

func readReq(uri string) mcp.ReadResourceRequest {
	var req mcp.ReadResourceRequest
	req.Params.URI = uri
	return req
}

func TestReadIndex(t *testing.T) {
	src := &fakeSource{index: "# LimeLink Docs"}
	d := NewDocs(src)

	contents, err := d.ReadIndex(context.Background(), readReq(IndexURI))
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "limelink://docs/index", tc.URI)
	assert.Equal(t, "text/plain", tc.MIMEType)
	assert.Equal(t, "# LimeLink Docs", tc.Text)
}

func TestReadPage(t *testing.T) {
	src := &fakeSource{pages: map[string]string{"ios-sdk": "# iOS SDK"}}
	d := NewDocs(src)

	contents, err := d.ReadPage(context.Background(), readReq(PageURI("ios-sdk")))
	require.NoError(t, err)
	require.Len(t, contents, 1)

	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "limelink://docs/ios-sdk", tc.URI)
	assert.Equal(t, "text/markdown", tc.MIMEType)
	assert.Equal(t, "# iOS SDK", tc.Text)
	assert.Equal(t, []string{"ios-sdk"}, src.fetched)
}

func TestReadPageInvalidSlug(t *testing.T) {
	src := &fakeSource{}
	d := NewDocs(src)

	_, err := d.ReadPage(context.Background(), readReq("limelink://docs/not-a-page"))
	require.Error(t, err)

	var ise *docs.InvalidSlugError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "not-a-page", ise.Slug)
	assert.Empty(t, src.fetched)
}

func TestReadPageForeignURI(t *testing.T) {
	_, err := NewDocs(&fakeSource{}).ReadPage(context.Background(), readReq("https://limelink.org/md/intro.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported resource uri")
}

func TestReadPropagatesFetchError(t *testing.T) {
	src := &fakeSource{err: &docs.FetchError{Resource: "document 'advanced'", StatusCode: 500}}
	d := NewDocs(src)

	_, err := d.ReadPage(context.Background(), readReq(PageURI("advanced")))
	assert.EqualError(t, err, "failed to fetch document 'advanced': HTTP 500")

	_, err = d.ReadIndex(context.Background(), readReq(IndexURI))
	assert.Error(t, err)
}
