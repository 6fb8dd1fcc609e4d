package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/commitpin/pkg/errors"
)

const walletPackage = `{
  "name": "My-Wallet-HD",
  "version": "3.0.0",
  "author": "someone",
  "contributors": ["a", "b"],
  "homepage": "https://example.com",
  "bugs": {"url": "https://example.com/issues"},
  "license": "AGPL",
  "repository": {"type": "git"},
  "scripts": {"test": "karma start", "postinstall": "old"},
  "dependencies": {"bip39": "2.1.0"},
  "devDependencies": {
    "karma": "0.12.0",
    "grunt-contrib-clean": "0.6.0",
    "grunt-surround": "0.2.0",
    "jshint": "2.5.0"
  }
}`

func TestSanitize_Package(t *testing.T) {
	doc := mustParse(t, walletPackage)
	if err := NewSanitizer(nil).Sanitize(doc, Package); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}

	want := `{
  "name": "My-Wallet-HD",
  "version": "3.0.0",
  "scripts": {
    "postinstall": "browserify -s Browserify ../browserify-imports.js > browserify.js && cd node_modules/bip39 && npm run compile && mv bip39.js ../.. && cd ../.. && cp node_modules/xregexp/xregexp-all.js . && cd node_modules/sjcl && ./configure --with-sha1 && make && cd - && cp node_modules/sjcl/sjcl.js ."
  },
  "dependencies": {
    "bip39": "2.1.0"
  },
  "devDependencies": {
    "grunt-contrib-clean": "0.6.0",
    "grunt-surround": "0.2.0"
  }
}
`
	if got := encode(t, doc); got != want {
		t.Errorf("Sanitize mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestSanitize_PackageDropsPostinstall(t *testing.T) {
	doc := mustParse(t, `{"name": "angular-blockchain-wallet", "scripts": {"postinstall": "bower install", "start": "serve"}}`)
	if err := NewSanitizer(nil).Sanitize(doc, Package); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	scripts, _ := doc.GetObject("scripts")
	if diff := cmp.Diff([]string{"start"}, scripts.Keys()); diff != "" {
		t.Errorf("scripts mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitize_PackageWithoutScripts(t *testing.T) {
	doc := mustParse(t, `{"name": "My-Wallet-HD"}`)
	if err := NewSanitizer(nil).Sanitize(doc, Package); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	scripts, ok := doc.GetObject("scripts")
	if !ok {
		t.Fatal("scripts should be created for the postinstall command")
	}
	if _, ok := scripts.Get("postinstall"); !ok {
		t.Error("postinstall missing")
	}

	doc = mustParse(t, `{"name": "angular-blockchain-wallet"}`)
	if err := NewSanitizer(nil).Sanitize(doc, Package); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if _, ok := doc.Get("scripts"); ok {
		t.Error("scripts should not be created without a postinstall command")
	}
}

func TestSanitize_UnknownPackage(t *testing.T) {
	for _, in := range []string{`{"name": "renamed-wallet"}`, `{}`, `{"name": 3}`} {
		doc := mustParse(t, in)
		err := NewSanitizer(nil).Sanitize(doc, Package)
		if !errors.Is(err, errors.ErrCodeConfiguration) {
			t.Errorf("Sanitize(%s) = %v, want configuration error", in, err)
		}
	}
}

func TestSanitize_CustomProfiles(t *testing.T) {
	s := NewSanitizer([]Profile{{Name: "my-app", Postinstall: "make"}})

	doc := mustParse(t, `{"name": "my-app", "scripts": {}}`)
	if err := s.Sanitize(doc, Package); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	scripts, _ := doc.GetObject("scripts")
	if v, _ := scripts.Get("postinstall"); v != "make" {
		t.Errorf("postinstall = %v, want make", v)
	}

	if err := s.Sanitize(mustParse(t, `{"name": "My-Wallet-HD"}`), Package); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("custom profiles replace the defaults, got %v", err)
	}
}

func TestSanitize_Bower(t *testing.T) {
	doc := mustParse(t, `{"name": "wallet", "authors": ["a"], "main": "index.js", "ignore": ["x"], "license": "MIT", "keywords": ["k"], "dependencies": {}}`)
	if err := NewSanitizer(nil).Sanitize(doc, Bower); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if diff := cmp.Diff([]string{"name", "dependencies"}, doc.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitize_ShrinkwrapUnchanged(t *testing.T) {
	in := `{"name": "x", "license": "MIT", "dependencies": {}}`
	doc := mustParse(t, in)
	if err := NewSanitizer(nil).Sanitize(doc, Shrinkwrap); err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if got, want := encode(t, doc), encode(t, mustParse(t, in)); got != want {
		t.Errorf("shrinkwrap changed:\n%s", cmp.Diff(want, got))
	}
}
