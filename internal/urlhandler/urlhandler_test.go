package urlhandler

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "https://example.com/gallery", expected: "https://example.com/gallery"},
		{input: "  example.com/page ", expected: "http://example.com/page"},
		{input: "", wantErr: true},
		{input: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://example.com/blog/post.html")
	require.NoError(t, err)

	tests := []struct {
		href     string
		base     *url.URL
		expected string
		wantErr  bool
	}{
		{href: "/img/cat.png", base: base, expected: "https://example.com/img/cat.png"},
		{href: "thumb.jpg", base: base, expected: "https://example.com/blog/thumb.jpg"},
		{href: "//cdn.example.com/v.mp4", base: base, expected: "https://cdn.example.com/v.mp4"},
		{href: "https://other.org/a.gif", base: base, expected: "https://other.org/a.gif"},
		{href: "data:image/png;base64,AAAA", base: base, expected: "data:image/png;base64,AAAA"},
		{href: "relative.png", base: nil, wantErr: true},
		{href: "   ", base: base, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, err := ResolveURL(tt.href, tt.base)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestValidateURLFormat(t *testing.T) {
	assert.NoError(t, ValidateURLFormat("https://www.youtube.com/watch?v=abc"))
	assert.NoError(t, ValidateURLFormat("http://localhost:8080/page"))
	assert.Error(t, ValidateURLFormat(""))
	assert.Error(t, ValidateURLFormat("not a url"))
	assert.Error(t, ValidateURLFormat("ftp://example.com/file"))
}

func TestReadURLs(t *testing.T) {
	input := strings.NewReader("# targets\nhttps://example.com\n\nexample.org/page\nhttp://\n")

	urls, err := ReadURLs(input, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "http://example.org/page"}, urls)

	_, err = ReadURLs(strings.NewReader("\n# nothing\n"), zerolog.Nop())
	assert.ErrorIs(t, err, ErrFileEmpty)
}

func TestReadURLsFromFile(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadURLsFromFile(filepath.Join(dir, "missing.txt"), zerolog.Nop())
	assert.ErrorIs(t, err, ErrFileNotFound)

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = ReadURLsFromFile(empty, zerolog.Nop())
	assert.ErrorIs(t, err, ErrFileEmpty)

	targets := filepath.Join(dir, "targets.txt")
	require.NoError(t, os.WriteFile(targets, []byte("https://a.example\nhttps://b.example\n"), 0644))
	urls, err := ReadURLsFromFile(targets, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
}
