// Package license classifies raw license text into a normalized license name.
//
// Classification is delegated to an external scanner (askalono compatible).
// A text that cannot be classified yields the empty name; that is a
// reportable state, not an error.
package license

import "context"

// Classifier returns the normalized license name for a license text.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, text string) (string, error)

// Classify implements Classifier.
func (f ClassifierFunc) Classify(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Nop classifies nothing. It is used when no scanner is available.
type Nop struct{}

// Classify always returns "".
func (Nop) Classify(context.Context, string) (string, error) { return "", nil }

var (
	_ Classifier = Nop{}
	_ Classifier = ClassifierFunc(nil)
)
