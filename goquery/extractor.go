// Package goquery implements selector-based field extraction and body
// rendering on top of PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/clanko"
	"golang.org/x/net/html"
)

// Ensure Extractor implements clanko.FieldExtractor at compile time.
var _ clanko.FieldExtractor = (*Extractor)(nil)

// Extractor locates a source's configured fields in an article page.
type Extractor struct {
	converter clanko.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter sets the converter used for tags bound to clanko.RuleMarkdown.
func WithConverter(c clanko.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract evaluates the source's field selectors in declared order.
func (e *Extractor) Extract(src *clanko.Source, rawHTML string) (clanko.Fields, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, clanko.Errorf(clanko.EINVALID, "failed to parse HTML: %v", err)
	}

	renderer := NewRenderer(src.Exclude, src.Rules, e.converter)

	fields := make(clanko.Fields, 0, len(src.Fields))
	for _, spec := range src.Fields {
		matcher, err := CompileSelector(spec.Selector)
		if err != nil {
			return nil, clanko.Errorf(clanko.EINVALID, "field %q: %s", spec.Name, clanko.ErrorMessage(err))
		}

		sel := doc.FindMatcher(matcher).First()
		if sel.Length() == 0 {
			if spec.Mandatory() {
				return nil, clanko.Errorf(clanko.EMISSING, "mandatory field %q not found (selector %q)", spec.Name, spec.Selector)
			}
			fields = append(fields, clanko.Field{Name: spec.Name})
			continue
		}

		var text string
		switch spec.EffectiveMode() {
		case clanko.ModeBody:
			text, err = renderer.Render(sel)
			if err != nil {
				return nil, err
			}
		case clanko.ModeLastText:
			text = LastText(sel)
		default:
			text = strings.TrimSpace(sel.Text())
		}

		fields = append(fields, clanko.Field{
			Name:  spec.Name,
			Text:  spec.Prefix + text,
			Found: true,
		})
	}

	return fields, nil
}

// CompileSelector parses a CSS selector.
// Returns EINVALID if the selector cannot be parsed.
func CompileSelector(selector string) (goquery.Matcher, error) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, clanko.Errorf(clanko.EINVALID, "invalid selector %q: %v", selector, err)
	}
	return matcher, nil
}

// LastText returns the last non-blank text node under the first node of sel,
// trimmed. Containers like the perex carry a label text node before the
// actual value, so the full inner text would include the label.
func LastText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}

	var last string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					last = t
				}
			case html.ElementNode:
				visit(c)
			}
		}
	}
	visit(sel.Get(0))

	return last
}

// ValidateSelectors compiles every field selector of src so configuration
// mistakes surface at startup rather than on the first article.
func ValidateSelectors(src *clanko.Source) error {
	for _, spec := range src.Fields {
		if _, err := CompileSelector(spec.Selector); err != nil {
			return clanko.Errorf(clanko.EINVALID, "source %q field %q: %s", src.Name, spec.Name, clanko.ErrorMessage(err))
		}
	}
	return nil
}
