package mock

import "github.com/fwojciec/clanko"

var _ clanko.Converter = (*Converter)(nil)

// Converter is a mock implementation of clanko.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
