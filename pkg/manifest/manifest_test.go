package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/commitpin/pkg/errors"
	"github.com/matzehuels/commitpin/pkg/pin"
)

func TestKindFor(t *testing.T) {
	tests := []struct {
		filename string
		want     Kind
		wantErr  bool
	}{
		{"npm-shrinkwrap.json", Shrinkwrap, false},
		{"app/package.json", Package, false},
		{"/src/bower.json", Bower, false},
		{"package-lock.json", 0, true},
	}
	for _, tt := range tests {
		got, err := KindFor(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("KindFor(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("KindFor(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	if Shrinkwrap.Form() != pin.Nested || Bower.Form() != pin.Flat {
		t.Error("only shrinkwrap manifests are walked in nested form")
	}
	if Package.Pinned() || !Shrinkwrap.Pinned() || !Bower.Pinned() {
		t.Error("package.json is sanitized only")
	}
}

func TestDependencies_Shrinkwrap(t *testing.T) {
	doc := mustParse(t, `{
		"name": "app",
		"dependencies": {
			"lib": {"version": "1.2.0", "from": "lib@1.2.0", "dependencies": {
				"child": {"version": "2.0.0"}
			}},
			"empty": {"version": "~1.0.0", "dependencies": {}},
			"bare": {}
		}
	}`)

	got, err := Dependencies(doc, Shrinkwrap)
	if err != nil {
		t.Fatalf("Dependencies: %v", err)
	}
	want := []pin.Dependency{
		{Name: "lib", Requested: "1.2.0", HasNested: true, Nested: []pin.Dependency{
			{Name: "child", Requested: "2.0.0"},
		}},
		{Name: "empty", Requested: "~1.0.0", HasNested: true, Nested: []pin.Dependency{}},
		{Name: "bare"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestDependencies_Bower(t *testing.T) {
	doc := mustParse(t, `{"dependencies": {"entropy": "pernas/angular-password-entropy#0.1.3", "qr": "~1.0.0"}}`)

	got, err := Dependencies(doc, Bower)
	if err != nil {
		t.Fatalf("Dependencies: %v", err)
	}
	want := []pin.Dependency{
		{Name: "entropy", Requested: "pernas/angular-password-entropy#0.1.3"},
		{Name: "qr", Requested: "~1.0.0"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}
}

func TestDependencies_Missing(t *testing.T) {
	got, err := Dependencies(mustParse(t, `{"name": "app"}`), Bower)
	if err != nil || got != nil {
		t.Errorf("Dependencies = %v, %v; want nil, nil", got, err)
	}
}

func TestDependencies_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		kind Kind
	}{
		{"dependencies not an object", `{"dependencies": []}`, Bower},
		{"bower value not a string", `{"dependencies": {"a": {"version": "1.0.0"}}}`, Bower},
		{"shrinkwrap value not an object", `{"dependencies": {"a": "1.0.0"}}`, Shrinkwrap},
		{"version not a string", `{"dependencies": {"a": {"version": 1}}}`, Shrinkwrap},
		{"nested not an object", `{"dependencies": {"a": {"version": "1.0.0", "dependencies": "b"}}}`, Shrinkwrap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Dependencies(mustParse(t, tt.doc), tt.kind)
			if !errors.Is(err, errors.ErrCodeInvalidManifest) {
				t.Errorf("err = %v, want invalid manifest", err)
			}
		})
	}
}

func TestApply_Shrinkwrap(t *testing.T) {
	doc := mustParse(t, `{
		"name": "app",
		"dependencies": {
			"grunt": {"version": "0.4.5"},
			"angular": {"version": "1.2.28", "from": "angular@1.2.28", "resolved": "https://registry.npmjs.org/angular/-/angular-1.2.28.tgz"},
			"lib": {"version": "1.2.0", "from": "lib@1.2.0", "dependencies": {
				"child": {"version": "2.0.0"},
				"angular": {"version": "1.2.0"}
			}}
		},
		"version": "1.0.0"
	}`)
	entries := []pin.Entry{
		{Name: "angular", Action: pin.Retained},
		{Name: "lib", Action: pin.Pinned, Reference: "org/lib#abc123", HasNested: true, Nested: []pin.Entry{
			{Name: "child", Action: pin.Pinned, Reference: "org/child#c1"},
			{Name: "angular", Action: pin.Retained},
		}},
	}

	if err := Apply(doc, Shrinkwrap, entries); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := `{
  "name": "app",
  "dependencies": {
    "angular": {
      "version": "1.2.28",
      "from": "angular@1.2.28",
      "resolved": "https://registry.npmjs.org/angular/-/angular-1.2.28.tgz"
    },
    "lib": {
      "version": "org/lib#abc123",
      "dependencies": {
        "child": {
          "version": "org/child#c1"
        },
        "angular": {
          "version": "1.2.0"
        }
      }
    }
  },
  "version": "1.0.0"
}
`
	if got := encode(t, doc); got != want {
		t.Errorf("Apply mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestApply_Bower(t *testing.T) {
	doc := mustParse(t, `{"dependencies": {"angular": "1.2.28", "qr": "~1.0.0", "skipped": "1.0.0"}}`)
	entries := []pin.Entry{
		{Name: "angular", Action: pin.Retained},
		{Name: "qr", Action: pin.Pinned, Reference: "org/qr#q1"},
	}
	if err := Apply(doc, Bower, entries); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := "{\n  \"dependencies\": {\n    \"angular\": \"1.2.28\",\n    \"qr\": \"org/qr#q1\"\n  }\n}\n"
	if got := encode(t, doc); got != want {
		t.Errorf("Apply mismatch:\n%s", cmp.Diff(want, got))
	}
}

func TestApply_NoDependencies(t *testing.T) {
	doc := mustParse(t, `{"name": "app"}`)
	if err := Apply(doc, Bower, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := doc.Get("dependencies"); ok {
		t.Error("Apply should not add an absent dependencies member")
	}

	doc = mustParse(t, `{"dependencies": {"grunt": "0.4.5"}}`)
	if err := Apply(doc, Bower, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if deps, _ := doc.GetObject("dependencies"); deps == nil || deps.Len() != 0 {
		t.Errorf("dependencies = %v, want empty object", deps)
	}
}

func TestApply_UndeclaredEntry(t *testing.T) {
	doc := mustParse(t, `{"dependencies": {}}`)
	err := Apply(doc, Bower, []pin.Entry{{Name: "ghost", Action: pin.Pinned, Reference: "org/ghost#1"}})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("err = %v, want internal", err)
	}
}

func TestApply_RetainedIsCopied(t *testing.T) {
	doc := mustParse(t, `{"dependencies": {"angular": {"version": "1.2.28"}}}`)
	before, _ := doc.GetObject("dependencies")
	declared, _ := before.GetObject("angular")

	if err := Apply(doc, Shrinkwrap, []pin.Entry{{Name: "angular", Action: pin.Retained}}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	declared.Set("version", "mutated")

	after, _ := doc.GetObject("dependencies")
	retained, _ := after.GetObject("angular")
	if v, _ := retained.Get("version"); v != "1.2.28" {
		t.Errorf("retained version = %v, want 1.2.28", v)
	}
}
