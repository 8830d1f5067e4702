package clanko

import (
	"context"
	"strings"
)

// Exporter hands a formatted document to its final destination.
type Exporter interface {
	// Export writes content under the base filename name (without
	// extension) and returns the path of the produced file.
	Export(ctx context.Context, content, name string) (path string, err error)
}

// ValidateName rejects export names that would escape the output directory.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return Errorf(EINVALID, "invalid output name %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return Errorf(EINVALID, "output name %q must not contain path separators", name)
	}
	return nil
}
