// Package version compares the two version-string forms found in npm
// shrinkwrap and bower manifests.
//
// # Forms
//
// An exact version ("1.2.3") is compared against a whitelisted version with
// raw byte-wise string ordering. This is deliberately not numeric: "10.0.0"
// sorts before "9.0.0". Changing it would change which requested versions a
// whitelist accepts, so the ordering is kept as-is.
//
// A range version ("~1.2.3") is compared on its major and minor components
// only; the patch component is ignored.
//
// # Usage
//
//	v := version.Effective("pernas/angular-password-entropy#~0.1.3") // "~0.1.3"
//	if err := version.Validate(v); err != nil {
//	    return err // INVALID_FORMAT
//	}
//	ok := version.Satisfies(v, entry.Floor)
package version
