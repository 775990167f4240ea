package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name taken from tool output.
// It rejects names that cannot safely be used as map keys, file names or
// URL path segments:
//   - No empty names
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
//
// Ecosystem-specific validation is layered on top by the callers.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "package name %q contains whitespace or control characters", name)
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// pubPackageNameRegex matches Dart package names: identifiers made of
// letters, digits and underscores that do not start with a digit.
var pubPackageNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidatePubPackageName validates a pub.dev package name.
func ValidatePubPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !pubPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid pub package name: %q", name)
	}

	return nil
}

// ValidateVersion validates a resolved version string. Resolved versions are
// never ranges, so whitespace is rejected along with empty strings.
func ValidateVersion(version string) error {
	if version == "" {
		return New(ErrCodeInvalidPackage, "version cannot be empty")
	}
	for _, r := range version {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "version %q contains whitespace or control characters", version)
		}
	}
	return nil
}
