package mergetag

import (
	"crypto/sha256"
	"io"

	"mergelint/internal/htmltag"
)

// Options configures a Validator.
type Options struct {
	// Tags is the allowlist for the angle pass; the zero Set selects htmltag.Default.
	Tags htmltag.Set
	// FirstCurlyOnly examines only the first {{...}} span, matching the
	// behavior of older validators.
	FirstCurlyOnly bool
}

// Validator runs the three passes. It holds no mutable state and is safe
// for concurrent use.
type Validator struct {
	tags           htmltag.Set
	firstCurlyOnly bool
}

// New returns a Validator for opts.
func New(opts Options) *Validator {
	tags := opts.Tags
	if tags.Len() == 0 {
		tags = htmltag.Default
	}
	return &Validator{tags: tags, firstCurlyOnly: opts.FirstCurlyOnly}
}

var defaultValidator = New(Options{})

// Validate runs the angle, square and curly passes over text and returns
// their findings concatenated in that order.
func (v *Validator) Validate(text string) []Finding {
	angle := v.Angle(text)
	square := v.Square(text)
	curly := v.Curly(text)

	out := make([]Finding, 0, len(angle)+len(square)+len(curly))
	out = append(out, angle...)
	out = append(out, square...)
	out = append(out, curly...)
	return out
}

// Validate checks text with the default allowlist.
func Validate(text string) []Finding {
	return defaultValidator.Validate(text)
}

// rulesRevision changes whenever a scanner's behavior changes, so that
// cached findings produced by older rules are not reused.
const rulesRevision = "mergetag/1"

// Fingerprint identifies the rule set of v: revision, allowlist and options.
func (v *Validator) Fingerprint() [32]byte {
	h := sha256.New()
	_, _ = io.WriteString(h, rulesRevision)
	if v.firstCurlyOnly {
		_, _ = io.WriteString(h, "\x00first-curly-only")
	}
	for _, name := range v.tags.Names() {
		_, _ = io.WriteString(h, "\x00"+name)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
