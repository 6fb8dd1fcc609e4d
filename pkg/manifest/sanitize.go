package manifest

import (
	"slices"

	"github.com/matzehuels/commitpin/pkg/errors"
)

// Fields removed from package.json.
var packageMetadata = []string{"author", "contributors", "homepage", "bugs", "license", "repository"}

// Fields removed from bower.json.
var bowerMetadata = []string{"authors", "main", "ignore", "license", "keywords"}

// AllowedDevDependencies are the devDependencies kept in package.json.
var AllowedDevDependencies = []string{
	"grunt-contrib-clean",
	"grunt-contrib-concat",
	"grunt-surround",
	"grunt-contrib-coffee",
}

// Profile selects the postinstall script of a package.json by package name.
type Profile struct {
	Name string `mapstructure:"name" json:"name"`
	// Postinstall replaces scripts.postinstall. Empty removes it.
	Postinstall string `mapstructure:"postinstall" json:"postinstall,omitempty"`
}

// DefaultProfiles are the packages commitpin knows how to build.
var DefaultProfiles = []Profile{
	{
		Name: "My-Wallet-HD",
		Postinstall: "browserify -s Browserify ../browserify-imports.js > browserify.js" +
			" && cd node_modules/bip39 && npm run compile && mv bip39.js ../.. && cd ../.." +
			" && cp node_modules/xregexp/xregexp-all.js ." +
			" && cd node_modules/sjcl && ./configure --with-sha1 && make && cd - && cp node_modules/sjcl/sjcl.js .",
	},
	{Name: "angular-blockchain-wallet"},
}

// Sanitizer strips metadata from manifests before they are written to the
// build directory.
type Sanitizer struct {
	profiles map[string]Profile
}

// NewSanitizer creates a Sanitizer. A nil profiles slice selects
// [DefaultProfiles].
func NewSanitizer(profiles []Profile) *Sanitizer {
	if profiles == nil {
		profiles = DefaultProfiles
	}
	s := &Sanitizer{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		s.profiles[p.Name] = p
	}
	return s
}

// Sanitize modifies doc in place. Shrinkwrap documents are left untouched.
func (s *Sanitizer) Sanitize(doc *Object, kind Kind) error {
	switch kind {
	case Package:
		return s.sanitizePackage(doc)
	case Bower:
		for _, k := range bowerMetadata {
			doc.Delete(k)
		}
	}
	return nil
}

func (s *Sanitizer) sanitizePackage(doc *Object) error {
	name, _ := doc.Get("name")
	nameStr, _ := name.(string)
	profile, ok := s.profiles[nameStr]
	if !ok {
		return errors.New(errors.ErrCodeConfiguration, "package renamed? no build profile for %q", nameStr)
	}

	for _, k := range packageMetadata {
		doc.Delete(k)
	}
	if dev, ok := doc.GetObject("devDependencies"); ok {
		for _, k := range dev.Keys() {
			if !slices.Contains(AllowedDevDependencies, k) {
				dev.Delete(k)
			}
		}
	}

	scripts, ok := doc.GetObject("scripts")
	if !ok {
		if profile.Postinstall == "" {
			return nil
		}
		scripts = NewObject()
		doc.Set("scripts", scripts)
	}
	scripts.Delete("test")
	if profile.Postinstall != "" {
		scripts.Set("postinstall", profile.Postinstall)
	} else {
		scripts.Delete("postinstall")
	}
	return nil
}
