package mergetag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"mergelint/internal/htmltag"
)

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty document",
			text: "",
		},
		{
			name: "no delimiters",
			text: "Hello there, thanks for signing up.",
		},
		{
			name: "allowlisted markup only",
			text: "<!DOCTYPE html><html><body><p class=\"x\">Hi<br/></p></body></html>",
		},
		{
			name: "comment",
			text: "<!-- first name goes here -->",
		},
		{
			name: "angle variable",
			text: "Dear <First Name>,",
			want: []string{"Incorrect delimiter usage: found <First Name> but expected {{First Name}}"},
		},
		{
			name: "angle variable is trimmed",
			text: "< name >",
			want: []string{"Incorrect delimiter usage: found <name> but expected {{name}}"},
		},
		{
			name: "closing and self-closing tags",
			text: "</DIV><img src=\"a.png\" /><Br/>",
		},
		{
			name: "empty angle brackets",
			text: "a <> b < > c",
		},
		{
			name: "square variable",
			text: "Hi [name]!",
			want: []string{"Incorrect delimiter usage: found [name] but expected {{name}}"},
		},
		{
			name: "square inner not trimmed",
			text: "[ name ]",
			want: []string{"Incorrect delimiter usage: found [ name ] but expected {{ name }}"},
		},
		{
			name: "empty square brackets",
			text: "items[]",
			want: []string{"Incorrect delimiter usage: found [] but expected {{}}"},
		},
		{
			name: "css attribute selector",
			text: `input[type="text"] { color: red }`,
		},
		{
			name: "code markers",
			text: "a[i=0] b[f(x)] c[\"k\"]",
		},
		{
			name: "empty curly",
			text: "Hello {{}}",
			want: []string{"Empty merge variable found: {{}}"},
		},
		{
			name: "blank curly keeps matched text",
			text: "Hello {{  }}",
			want: []string{"Empty merge variable found: {{  }}"},
		},
		{
			name: "valid curly",
			text: "Hello {{first_name}} {{last-name}} {{a.b}} {{$x}} {{name&co}}",
		},
		{
			name: "whitespace in curly",
			text: "{{ my variable }}",
			want: []string{"Invalid merge variable {{ my variable }}: contains 'whitespace'"},
		},
		{
			name: "tab and newline count as whitespace",
			text: "{{a\tb\nc}}",
			want: []string{"Invalid merge variable {{a\tb\nc}}: contains 'whitespace'"},
		},
		{
			name: "forbidden characters sorted and distinct",
			text: "{{~a!b!c @d}}",
			want: []string{"Invalid merge variable {{~a!b!c @d}}: contains 'whitespace' '!' '@' '~'"},
		},
		{
			name: "triple braces",
			text: "{{{name}}}",
			want: []string{"Invalid merge variable {{{name}}: contains '{'"},
		},
		{
			name: "shortest closing braces",
			text: "{{a}} and {{b c}}",
			want: []string{"Invalid merge variable {{b c}}: contains 'whitespace'"},
		},
		{
			name: "unclosed curly",
			text: "{{name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Messages(Validate(tt.text))
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Validate(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestValidateOrderIsAngleSquareCurly(t *testing.T) {
	// Curly first, square second, angle last in the text.
	text := "{{}} then [name] then <Name>"
	want := []string{
		"Incorrect delimiter usage: found <Name> but expected {{Name}}",
		"Incorrect delimiter usage: found [name] but expected {{name}}",
		"Empty merge variable found: {{}}",
	}
	if diff := cmp.Diff(want, Messages(Validate(text))); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateLeftToRightWithinPass(t *testing.T) {
	text := "[b] <Y> [a] <X>"
	got := Validate(text)
	want := []Finding{
		{Kind: KindMisdelimited, Delim: DelimAngle, Start: 4, End: 7, Inner: "Y", BadOffset: -1,
			Message: "Incorrect delimiter usage: found <Y> but expected {{Y}}"},
		{Kind: KindMisdelimited, Delim: DelimAngle, Start: 12, End: 15, Inner: "X", BadOffset: -1,
			Message: "Incorrect delimiter usage: found <X> but expected {{X}}"},
		{Kind: KindMisdelimited, Delim: DelimSquare, Start: 0, End: 3, Inner: "b", BadOffset: -1,
			Message: "Incorrect delimiter usage: found [b] but expected {{b}}"},
		{Kind: KindMisdelimited, Delim: DelimSquare, Start: 8, End: 11, Inner: "a", BadOffset: -1,
			Message: "Incorrect delimiter usage: found [a] but expected {{a}}"},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("findings mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateIdempotent(t *testing.T) {
	text := "<p>Dear <First Name>, your [plan] renews. {{ x }} {{}} {{ok}}</p>"
	first := Validate(text)
	second := Validate(text)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second run differs (-first +second):\n%s", diff)
	}
	if len(first) != 4 {
		t.Fatalf("expected 4 findings, got %d: %v", len(first), Messages(first))
	}
}

func TestCurlyScansEverySpan(t *testing.T) {
	text := "{{ok}} {{bad one}} {{}}"
	want := []string{
		"Invalid merge variable {{bad one}}: contains 'whitespace'",
		"Empty merge variable found: {{}}",
	}
	if diff := cmp.Diff(want, Messages(Validate(text))); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFirstCurlyOnly(t *testing.T) {
	v := New(Options{FirstCurlyOnly: true})

	tests := []struct {
		text string
		want []string
	}{
		{"{{ok}} {{bad one}} {{}}", nil},
		{"{{bad one}} {{}}", []string{"Invalid merge variable {{bad one}}: contains 'whitespace'"}},
		{"{{}} {{bad one}}", []string{"Empty merge variable found: {{}}"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Messages(v.Validate(tt.text)), cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("FirstCurlyOnly %q mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestCustomAllowlist(t *testing.T) {
	text := "<o:p></o:p><Name>"
	if got := len(Validate(text)); got != 3 {
		t.Fatalf("default allowlist: expected 3 findings, got %d", got)
	}

	v := New(Options{Tags: htmltag.Default.With("o:p")})
	want := []string{"Incorrect delimiter usage: found <Name> but expected {{Name}}"}
	if diff := cmp.Diff(want, Messages(v.Validate(text))); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNoPanicOnArbitraryText(t *testing.T) {
	inputs := []string{
		"<<<>>>", "[[[]]]", "{{{{}}}}", "}}{{", "<", "]", "{{\x00}}", "\xff\xfe<a>", "ü<ñame>[ö]{{é è}}",
	}
	for _, in := range inputs {
		_ = Validate(in)
	}
}

func TestFingerprint(t *testing.T) {
	base := New(Options{}).Fingerprint()
	if base != New(Options{Tags: htmltag.Default}).Fingerprint() {
		t.Error("zero Tags and Default must share a fingerprint")
	}
	if base == New(Options{FirstCurlyOnly: true}).Fingerprint() {
		t.Error("FirstCurlyOnly must change the fingerprint")
	}
	if base == New(Options{Tags: htmltag.Default.With("o:p")}).Fingerprint() {
		t.Error("extra tags must change the fingerprint")
	}
}
