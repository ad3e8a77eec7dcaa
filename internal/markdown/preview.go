// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// previewEngine renders GitHub-flavored Markdown. goldmark.Markdown is safe
// for concurrent use once configured.
var previewEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

// Preview renders Markdown to an HTML fragment. Raw HTML in the input is
// not passed through.
func Preview(md []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := previewEngine.Convert(md, &buf); err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return buf.Bytes(), nil
}
