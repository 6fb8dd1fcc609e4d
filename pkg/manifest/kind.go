package manifest

import (
	"path/filepath"

	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/pin"
)

// Kind identifies one of the manifests commitpin rewrites.
type Kind int

const (
	// Shrinkwrap is the npm lock manifest, with nested dependencies.
	Shrinkwrap Kind = iota
	// Package is the top-level package.json. It is sanitized, not pinned.
	Package
	// Bower is the flat bower.json manifest.
	Bower
)

// Kinds lists every kind in processing order.
var Kinds = []Kind{Shrinkwrap, Package, Bower}

// Filename returns the conventional file name of the kind.
func (k Kind) Filename() string {
	switch k {
	case Shrinkwrap:
		return "npm-shrinkwrap.json"
	case Package:
		return "package.json"
	case Bower:
		return "bower.json"
	}
	return "unknown"
}

func (k Kind) String() string { return k.Filename() }

// Pinned reports whether dependencies of this kind are verified and pinned.
func (k Kind) Pinned() bool { return k != Package }

// Form returns the walk form for the kind's dependency tree.
func (k Kind) Form() pin.Form {
	if k == Shrinkwrap {
		return pin.Nested
	}
	return pin.Flat
}

// KindFor infers the kind from a file name.
func KindFor(filename string) (Kind, error) {
	base := filepath.Base(filename)
	for _, k := range Kinds {
		if k.Filename() == base {
			return k, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidManifest, "unrecognized manifest %s", base)
}
