package clanko

import (
	"fmt"
	"log/slog"
	"strings"
)

// Semantic field names understood by Assemble.
const (
	FieldTitle    = "title"
	FieldAuthor   = "author"
	FieldDayMonth = "day_month"
	FieldYear     = "year"
	FieldTime     = "time"
	FieldPerex    = "perex"
	FieldBody     = "body"
)

// FieldMode selects how a matched node is turned into text.
type FieldMode string

// FieldMode constants.
const (
	// ModeText trims the inner text of the matched node.
	ModeText FieldMode = "text"

	// ModeLastText takes the last non-blank text node under the matched node.
	// Used for containers that carry a label before the actual value.
	ModeLastText FieldMode = "last_text"

	// ModeBody renders the matched subtree with the source's exclusion list
	// and render rules.
	ModeBody FieldMode = "body"
)

// RenderRule decides what a text node emits, keyed by its enclosing tag.
type RenderRule string

// RenderRule constants.
const (
	// RuleText appends the trimmed text with no delimiters.
	RuleText RenderRule = "text"

	// RuleHeading emits "\n\n## " + text + "\n".
	RuleHeading RenderRule = "heading"

	// RuleSkip emits nothing (captions, inline parameter widgets).
	RuleSkip RenderRule = "skip"

	// RuleLine emits "\n" + text + "\n" (definition terms).
	RuleLine RenderRule = "line"

	// RuleMarkdown converts the whole element with a Converter instead of
	// walking it. Intended for tables and lists.
	RuleMarkdown RenderRule = "markdown"
)

// Valid reports whether r is a known rule.
func (r RenderRule) Valid() bool {
	switch r {
	case RuleText, RuleHeading, RuleSkip, RuleLine, RuleMarkdown:
		return true
	}
	return false
}

// Credentials are the login secrets for a source.
type Credentials struct {
	Username string
	Password string
}

// String hides the password.
func (c Credentials) String() string {
	return c.Username + ":********"
}

// LogValue implements slog.LogValuer so credentials never leak into logs.
func (c Credentials) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

// Login describes the CSRF login handshake of a source.
type Login struct {
	// PageURL serves the login form carrying the CSRF token.
	PageURL string

	// ActionURL receives the credentials. Defaults to PageURL.
	ActionURL string

	// Form field names.
	TokenField    string
	UsernameField string
	PasswordField string
}

// Default form field names used by the newsandmedia SSO.
const (
	DefaultTokenField    = "_csrf_token"
	DefaultUsernameField = "_username"
	DefaultPasswordField = "_password"
)

// Action returns the URL credentials are posted to.
func (l *Login) Action() string {
	if l.ActionURL != "" {
		return l.ActionURL
	}
	return l.PageURL
}

// FieldSpec binds a semantic field to a selector.
type FieldSpec struct {
	Name     string
	Selector string
	Mode     FieldMode

	// Required fields abort extraction when their selector matches nothing.
	// Title and body are always required.
	Required bool

	// Prefix is prepended to the extracted text when the field is found.
	// Date parts are concatenated without separators, so a source that
	// wants "5.3.2024 10:00" configures the time field with Prefix " ".
	Prefix string
}

// EffectiveMode returns the configured mode, defaulting to ModeBody for the
// body field and ModeText for everything else.
func (f FieldSpec) EffectiveMode() FieldMode {
	if f.Mode != "" {
		return f.Mode
	}
	if f.Name == FieldBody {
		return ModeBody
	}
	return ModeText
}

// Mandatory reports whether a missing match must fail the extraction.
func (f FieldSpec) Mandatory() bool {
	return f.Required || f.Name == FieldTitle || f.Name == FieldBody
}

// Source describes one supported site: where it lives, how to log in and
// how to turn its article pages into a Document.
type Source struct {
	Name string

	// AllowedDomains are matched exactly against the URL hostname.
	// "trend.sk" and "www.trend.sk" are separate entries.
	AllowedDomains []string

	Credentials Credentials

	// Login is nil for sources that need no authentication.
	Login *Login

	// Fields are evaluated in declared order.
	Fields []FieldSpec

	// Exclude lists class names whose elements are pruned with their
	// entire subtree while rendering the body.
	Exclude []string

	// Rules maps a tag name to the rule applied to its text children.
	// Tags without an entry use RuleText.
	Rules map[string]RenderRule
}

// Allows reports whether host is one of the source's allowed domains.
func (s *Source) Allows(host string) bool {
	host = strings.ToLower(host)
	for _, d := range s.AllowedDomains {
		if strings.ToLower(d) == host {
			return true
		}
	}
	return false
}

// Field returns the FieldSpec with the given name.
func (s *Source) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "source name required")
	}
	if len(s.AllowedDomains) == 0 {
		return Errorf(EINVALID, "source %q: at least one allowed domain required", s.Name)
	}
	if s.Login != nil && s.Login.PageURL == "" {
		return Errorf(EINVALID, "source %q: login page URL required", s.Name)
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return Errorf(EINVALID, "source %q: field name required", s.Name)
		}
		if seen[f.Name] {
			return Errorf(EINVALID, "source %q: duplicate field %q", s.Name, f.Name)
		}
		seen[f.Name] = true
		if strings.TrimSpace(f.Selector) == "" {
			return Errorf(EINVALID, "source %q: field %q has no selector", s.Name, f.Name)
		}
		switch f.Mode {
		case ModeText, ModeLastText, ModeBody, "":
		default:
			return Errorf(EINVALID, "source %q: field %q has unknown mode %q", s.Name, f.Name, f.Mode)
		}
	}
	for _, name := range []string{FieldTitle, FieldBody} {
		if !seen[name] {
			return Errorf(EINVALID, "source %q: %s field required", s.Name, name)
		}
	}

	for tag, rule := range s.Rules {
		if !rule.Valid() {
			return Errorf(EINVALID, "source %q: unknown render rule %q for tag %q", s.Name, rule, tag)
		}
	}
	return nil
}

// String returns the source name.
func (s *Source) String() string {
	return fmt.Sprintf("source(%s)", s.Name)
}

// SourceRegistry maps article URLs to configured sources.
type SourceRegistry interface {
	// Resolve returns the source whose allowed domains contain the URL's host.
	// Returns ENOSOURCE if no source matches.
	Resolve(rawURL string) (*Source, error)

	// Register adds a source. Returns EINVALID for invalid or duplicate sources.
	Register(src *Source) error

	// Sources returns all registered sources in registration order.
	Sources() []*Source
}
