package mock

import (
	"context"

	"github.com/fwojciec/clanko"
)

var _ clanko.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of clanko.Exporter.
type Exporter struct {
	ExportFn func(ctx context.Context, content, name string) (string, error)
}

func (e *Exporter) Export(ctx context.Context, content, name string) (string, error) {
	return e.ExportFn(ctx, content, name)
}
