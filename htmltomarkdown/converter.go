// Package htmltomarkdown renders HTML fragments that plain-text rules handle
// poorly, such as tables and lists, into Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/clanko"
)

var _ clanko.Converter = (*Converter)(nil)

// Converter converts article body fragments to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with CommonMark and table support.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert returns the Markdown form of fragment with surrounding blank lines
// trimmed.
func (c *Converter) Convert(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", clanko.Errorf(clanko.EINVALID, "empty HTML fragment")
	}

	md, err := c.conv.ConvertString(fragment)
	if err != nil {
		return "", clanko.Errorf(clanko.EINTERNAL, "failed to convert fragment to markdown: %v", err)
	}

	return strings.TrimSpace(md), nil
}
