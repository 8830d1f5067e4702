package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clanko"
	"golang.org/x/net/html"
)

// Renderer converts an article body subtree into plain text.
//
// The walk is depth-first. Elements carrying an excluded class are pruned
// together with their whole subtree. Text nodes are emitted according to the
// rule bound to the tag of their nearest enclosing element. Output keeps
// document order exactly; nothing is reordered or deduplicated.
type Renderer struct {
	exclude   map[string]bool
	rules     map[string]clanko.RenderRule
	converter clanko.Converter
}

// NewRenderer creates a Renderer.
// The converter is only used for tags bound to clanko.RuleMarkdown and may be nil,
// in which case those tags are walked like any other element.
func NewRenderer(exclude []string, rules map[string]clanko.RenderRule, converter clanko.Converter) *Renderer {
	r := &Renderer{
		exclude:   make(map[string]bool, len(exclude)),
		rules:     make(map[string]clanko.RenderRule, len(rules)),
		converter: converter,
	}
	for _, class := range exclude {
		r.exclude[class] = true
	}
	for tag, rule := range rules {
		r.rules[strings.ToLower(tag)] = rule
	}
	return r
}

// Render walks the first node of sel and returns the accumulated text.
// The root's own tag is the context for its direct text children.
func (r *Renderer) Render(sel *goquery.Selection) (string, error) {
	if sel.Length() == 0 {
		return "", nil
	}
	root := sel.Get(0)

	var b strings.Builder
	if err := r.walk(&b, root, root.Data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) walk(b *strings.Builder, n *html.Node, tag string) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if r.excluded(c) {
				continue
			}
			if r.rule(c.Data) == clanko.RuleMarkdown && r.converter != nil {
				if err := r.convert(b, c); err != nil {
					return err
				}
				continue
			}
			if err := r.walk(b, c, c.Data); err != nil {
				return err
			}
		case html.TextNode:
			r.emit(b, tag, c.Data)
		}
	}
	return nil
}

func (r *Renderer) emit(b *strings.Builder, tag, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	switch r.rule(tag) {
	case clanko.RuleHeading:
		b.WriteString("\n\n## ")
		b.WriteString(text)
		b.WriteString("\n")
	case clanko.RuleSkip:
	case clanko.RuleLine:
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
	default:
		b.WriteString(text)
	}
}

func (r *Renderer) convert(b *strings.Builder, n *html.Node) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, r.prune(n)); err != nil {
		return clanko.Errorf(clanko.EINTERNAL, "failed to render <%s>: %v", n.Data, err)
	}

	md, err := r.converter.Convert(buf.String())
	if err != nil {
		return err
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return nil
	}

	b.WriteString("\n\n")
	b.WriteString(md)
	b.WriteString("\n")
	return nil
}

// prune returns a detached copy of n without excluded descendants and without
// the direct text of elements bound to clanko.RuleSkip, so the converter sees
// exactly what the walk would have emitted.
func (r *Renderer) prune(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	skip := n.Type == html.ElementNode && r.rule(n.Data) == clanko.RuleSkip
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			if r.excluded(c) {
				continue
			}
		case html.TextNode:
			if skip {
				continue
			}
		case html.CommentNode:
			continue
		}
		clone.AppendChild(r.prune(c))
	}
	return clone
}

func (r *Renderer) rule(tag string) clanko.RenderRule {
	if rule, ok := r.rules[tag]; ok {
		return rule
	}
	return clanko.RuleText
}

// excluded reports whether any of the node's classes is in the exclusion set.
func (r *Renderer) excluded(n *html.Node) bool {
	if len(r.exclude) == 0 {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Namespace != "" || attr.Key != "class" {
			continue
		}
		for _, class := range strings.Fields(attr.Val) {
			if r.exclude[class] {
				return true
			}
		}
	}
	return false
}
