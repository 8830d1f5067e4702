package mock

import "github.com/fwojciec/clanko"

var _ clanko.SourceRegistry = (*SourceRegistry)(nil)

// SourceRegistry is a mock implementation of clanko.SourceRegistry.
type SourceRegistry struct {
	ResolveFn  func(rawURL string) (*clanko.Source, error)
	RegisterFn func(src *clanko.Source) error
	SourcesFn  func() []*clanko.Source
}

func (r *SourceRegistry) Resolve(rawURL string) (*clanko.Source, error) {
	return r.ResolveFn(rawURL)
}

func (r *SourceRegistry) Register(src *clanko.Source) error {
	return r.RegisterFn(src)
}

func (r *SourceRegistry) Sources() []*clanko.Source {
	return r.SourcesFn()
}
