package whitelist

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/commitpin/pkg/errors"
)

const (
	keyIgnore = "ignore"
	keyRetain = "retain"
)

// DefaultRetained lists the exempt dependencies that are kept, unpinned, in
// rewritten manifests when a whitelist does not name its own.
var DefaultRetained = []string{
	"angular",
	"angular-mocks",
	"angular-animate",
	"angular-bootstrap",
	"angular-cookies",
	"angular-sanitize",
	"bootstrap-css-only",
}

// Format identifies the encoding of a whitelist file.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Entry is the vetted state of one dependency.
type Entry struct {
	Name       string   // Dependency name
	Repository string   // GitHub "owner/name" the source must come from
	Floor      string   // Highest reviewed version ("1.2.3" or "~1.2.3")
	Commits    []string // Approved commit SHAs, most recent first
}

// Approved reports whether sha is one of the entry's approved commits.
func (e Entry) Approved(sha string) bool {
	return slices.Contains(e.Commits, sha)
}

// Latest returns the most recently approved commit.
func (e Entry) Latest() string {
	if len(e.Commits) == 0 {
		return ""
	}
	return e.Commits[0]
}

// Whitelist is the read-only set of vetted and exempt dependencies.
type Whitelist struct {
	entries  map[string]Entry
	ignored  map[string]struct{}
	retained map[string]struct{}
}

// New builds a Whitelist from entries and the exemption lists. A nil retain
// slice selects [DefaultRetained]; an empty one retains nothing.
func New(entries []Entry, ignore, retain []string) *Whitelist {
	if retain == nil {
		retain = DefaultRetained
	}
	w := &Whitelist{
		entries:  make(map[string]Entry, len(entries)),
		ignored:  toSet(ignore),
		retained: toSet(retain),
	}
	for _, e := range entries {
		e.Commits = slices.Clone(e.Commits)
		w.entries[e.Name] = e
	}
	return w
}

// Load reads and validates the whitelist at path.
func Load(path string) (*Whitelist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "whitelist %s", path)
		}
		return nil, err
	}
	return Parse(data, FormatFor(path))
}

// Parse decodes and validates a whitelist document.
func Parse(data []byte, format Format) (*Whitelist, error) {
	data, err := canonicalJSON(data, format)
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "decode whitelist")
	}

	var (
		entries []Entry
		ignore  []string
		retain  []string
	)
	for name, raw := range fields {
		switch name {
		case keyIgnore:
			if err := json.Unmarshal(raw, &ignore); err != nil {
				return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "decode %q", keyIgnore)
			}
		case keyRetain:
			retain = []string{}
			if err := json.Unmarshal(raw, &retain); err != nil {
				return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "decode %q", keyRetain)
			}
		default:
			var e entryFile
			if err := json.Unmarshal(raw, &e); err != nil {
				return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "decode whitelist entry %q", name)
			}
			if err := errors.ValidatePackageName(name); err != nil {
				return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "whitelist entry %q", name)
			}
			entries = append(entries, e.toEntry(name))
		}
	}
	return New(entries, ignore, retain), nil
}

// Lookup returns the entry for name. The returned Entry is a copy.
func (w *Whitelist) Lookup(name string) (Entry, bool) {
	e, ok := w.entries[name]
	if !ok {
		return Entry{}, false
	}
	e.Commits = slices.Clone(e.Commits)
	return e, true
}

// Ignored reports whether name is exempt from verification.
func (w *Whitelist) Ignored(name string) bool {
	_, ok := w.ignored[name]
	return ok
}

// Retained reports whether an exempt name is kept unpinned in the output.
// Names that are not ignored are never retained.
func (w *Whitelist) Retained(name string) bool {
	if !w.Ignored(name) {
		return false
	}
	_, ok := w.retained[name]
	return ok
}

// Names returns the whitelisted dependency names in sorted order.
func (w *Whitelist) Names() []string {
	names := make([]string, 0, len(w.entries))
	for name := range w.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of whitelisted dependencies.
func (w *Whitelist) Len() int { return len(w.entries) }

type entryFile struct {
	Repo       string   `json:"repo"`
	Repository string   `json:"repository"`
	Version    string   `json:"version"`
	Commits    []string `json:"commits"`
}

func (e entryFile) toEntry(name string) Entry {
	repo := e.Repo
	if repo == "" {
		repo = e.Repository
	}
	return Entry{Name: name, Repository: repo, Floor: e.Version, Commits: e.Commits}
}

// canonicalJSON converts a TOML whitelist to JSON so that both formats go
// through the same schema validation and decoding.
func canonicalJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatTOML {
		return data, nil
	}
	var doc map[string]any
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "whitelist is not valid TOML")
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "convert TOML whitelist")
	}
	return out, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
