package manifest

import (
	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/pin"
)

const (
	keyDependencies = "dependencies"
	keyVersion      = "version"
)

// Dependencies extracts the declared dependency tree of doc. A document
// without a "dependencies" member declares nothing.
func Dependencies(doc *Object, kind Kind) ([]pin.Dependency, error) {
	v, ok := doc.Get(keyDependencies)
	if !ok {
		return nil, nil
	}
	deps, ok := v.(*Object)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: %q is not an object", kind, keyDependencies)
	}
	return declared(deps, kind, keyDependencies)
}

func declared(deps *Object, kind Kind, path string) ([]pin.Dependency, error) {
	out := make([]pin.Dependency, 0, deps.Len())
	for _, name := range deps.keys {
		at := path + "." + name
		v := deps.values[name]

		if kind != Shrinkwrap {
			requested, ok := v.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: %s is not a version string", kind, at)
			}
			out = append(out, pin.Dependency{Name: name, Requested: requested})
			continue
		}

		decl, ok := v.(*Object)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: %s is not an object", kind, at)
		}
		d := pin.Dependency{Name: name}
		if rv, ok := decl.Get(keyVersion); ok {
			if d.Requested, ok = rv.(string); !ok {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: %s.%s is not a string", kind, at, keyVersion)
			}
		}
		if nv, ok := decl.Get(keyDependencies); ok {
			nested, ok := nv.(*Object)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidManifest, "%s: %s.%s is not an object", kind, at, keyDependencies)
			}
			var err error
			if d.Nested, err = declared(nested, kind, at+"."+keyDependencies); err != nil {
				return nil, err
			}
			d.HasNested = true
		}
		out = append(out, d)
	}
	return out, nil
}

// Apply replaces the "dependencies" member of doc with one built from
// entries. Pinned entries reference their commit; retained entries keep
// their declared value. Declared dependencies without an entry are left
// out. The member keeps its position in doc.
func Apply(doc *Object, kind Kind, entries []pin.Entry) error {
	declaredDeps, _ := doc.GetObject(keyDependencies)
	if declaredDeps == nil && len(entries) == 0 {
		return nil
	}
	deps, err := build(declaredDeps, kind, entries)
	if err != nil {
		return err
	}
	doc.Set(keyDependencies, deps)
	return nil
}

func build(declaredDeps *Object, kind Kind, entries []pin.Entry) (*Object, error) {
	out := NewObject()
	for _, e := range entries {
		decl, ok := declaredDeps.Get(e.Name)
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "%s: %s was never declared", kind, e.Name)
		}

		if e.Action == pin.Retained {
			out.Set(e.Name, cloneValue(decl))
			continue
		}
		if kind != Shrinkwrap {
			out.Set(e.Name, e.Reference)
			continue
		}

		pinned := NewObject()
		pinned.Set(keyVersion, e.Reference)
		if e.HasNested {
			declObj, _ := decl.(*Object)
			nestedDecl, _ := declObj.GetObject(keyDependencies)
			nested, err := build(nestedDecl, kind, e.Nested)
			if err != nil {
				return nil, err
			}
			pinned.Set(keyDependencies, nested)
		}
		out.Set(e.Name, pinned)
	}
	return out, nil
}
