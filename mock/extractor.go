package mock

import "github.com/fwojciec/clanko"

var _ clanko.FieldExtractor = (*FieldExtractor)(nil)

// FieldExtractor is a mock implementation of clanko.FieldExtractor.
type FieldExtractor struct {
	ExtractFn func(src *clanko.Source, html string) (clanko.Fields, error)
}

func (e *FieldExtractor) Extract(src *clanko.Source, html string) (clanko.Fields, error) {
	return e.ExtractFn(src, html)
}
