package clanko

// Converter converts an HTML fragment to Markdown.
// The body renderer hands it elements whose tag is bound to RuleMarkdown,
// typically tables and lists that plain text rendering would flatten.
type Converter interface {
	Convert(html string) (string, error)
}
