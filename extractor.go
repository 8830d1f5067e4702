package clanko

// Field is one extracted semantic field.
type Field struct {
	Name string

	// Text is the rendered value. Empty when the field was not found.
	Text string

	// Found is false when an optional field's selector matched nothing.
	Found bool
}

// Fields holds extracted fields in the source's declared order.
type Fields []Field

// Get returns the named field.
func (fs Fields) Get(name string) (Field, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Text returns the named field's text, or "" when it is absent.
func (fs Fields) Text(name string) string {
	f, ok := fs.Get(name)
	if !ok || !f.Found {
		return ""
	}
	return f.Text
}

// FieldExtractor locates a source's configured fields in an article page.
type FieldExtractor interface {
	// Extract evaluates the source's field selectors in declared order.
	// Optional fields that match nothing are recorded with Found=false.
	// Returns EMISSING when a mandatory field (title, body) matches nothing.
	Extract(src *Source, html string) (Fields, error)
}
