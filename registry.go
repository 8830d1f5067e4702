package clanko

import (
	"net/url"
	"strings"
)

var _ SourceRegistry = (*Registry)(nil)

// Registry resolves article URLs to sources by exact hostname match.
// Sources are consulted in registration order; the first match wins.
type Registry struct {
	sources []*Source
	byName  map[string]*Source
}

// NewRegistry creates a Registry holding the given sources.
// Returns an error if any source is invalid or registered twice.
func NewRegistry(sources ...*Source) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Source)}
	for _, src := range sources {
		if err := r.Register(src); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a source to the registry.
func (r *Registry) Register(src *Source) error {
	if src == nil {
		return Errorf(EINVALID, "nil source")
	}
	if err := src.Validate(); err != nil {
		return err
	}
	if r.byName == nil {
		r.byName = make(map[string]*Source)
	}
	if _, ok := r.byName[src.Name]; ok {
		return Errorf(EINVALID, "source %q already registered", src.Name)
	}
	r.byName[src.Name] = src
	r.sources = append(r.sources, src)
	return nil
}

// Resolve returns the source configured for the URL's host.
func (r *Registry) Resolve(rawURL string) (*Source, error) {
	host, err := Hostname(rawURL)
	if err != nil {
		return nil, err
	}
	for _, src := range r.sources {
		if src.Allows(host) {
			return src, nil
		}
	}
	return nil, Errorf(ENOSOURCE, "no source configured for %s", host)
}

// Sources returns the registered sources in registration order.
func (r *Registry) Sources() []*Source {
	out := make([]*Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Hostname parses rawURL and returns its lower-cased host without port.
// Returns EINVALID for URLs without a scheme or host.
func Hostname(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if (scheme != "http" && scheme != "https") || u.Hostname() == "" {
		return "", Errorf(EINVALID, "invalid URL %q: absolute http(s) URL required", rawURL)
	}
	return strings.ToLower(u.Hostname()), nil
}
