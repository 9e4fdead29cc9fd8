package textparser

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "plain text",
			text:   "hello world",
			wantOK: false,
		},
		{
			name:   "single expression",
			text:   "{{ msg }}",
			want:   "_s(msg)",
			wantOK: true,
		},
		{
			name:   "leading and trailing literals",
			text:   "Hi {{ name }}!",
			want:   `"Hi "+_s(name)+"!"`,
			wantOK: true,
		},
		{
			name:   "adjacent expressions",
			text:   "{{a}}{{ b }}",
			want:   "_s(a)+_s(b)",
			wantOK: true,
		},
		{
			name:   "expression spanning lines",
			text:   "{{ a +\n b }}",
			want:   "_s(a +\n b)",
			wantOK: true,
		},
		{
			name:   "literal with quotes and markup characters",
			text:   `say "<b>" & {{ x }}`,
			want:   `"say \"<b>\" & "+_s(x)`,
			wantOK: true,
		},
		{
			name:   "empty braces are not interpolation",
			text:   "{{}}",
			wantOK: false,
		},
		{
			name:   "unterminated span",
			text:   "{{ open",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("a{{ b }}c{{d}}")
	want := []string{`"a"`, "_s(b)", `"c"`, "_s(d)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens() mismatch (-want +got):\n%s", diff)
	}

	if Tokens("no interpolation") != nil {
		t.Error("expected nil tokens for plain text")
	}
}

// rebuild reverses the token list back into source text
func rebuild(t *testing.T, tokens []string) string {
	t.Helper()
	var sb strings.Builder
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "_s(") {
			sb.WriteString("{{" + strings.TrimSuffix(strings.TrimPrefix(tok, "_s("), ")") + "}}")
			continue
		}
		var lit string
		if err := json.Unmarshal([]byte(tok), &lit); err != nil {
			t.Fatalf("literal %q is not a JSON string: %v", tok, err)
		}
		sb.WriteString(lit)
	}
	return sb.String()
}

func TestTokensReconstructSource(t *testing.T) {
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		var sb strings.Builder
		parts := 1 + i%5
		for j := 0; j < parts; j++ {
			if (i+j)%2 == 0 {
				sb.WriteString(faker.Word() + " ")
			} else {
				sb.WriteString("{{" + faker.Word() + "}}")
			}
		}
		text := sb.String()

		tokens := Tokens(text)
		if tokens == nil {
			if strings.Contains(text, "{{") {
				t.Fatalf("no tokens for %q", text)
			}
			continue
		}
		if got := rebuild(t, tokens); got != text {
			t.Fatalf("rebuild mismatch:\n got %q\nwant %q", got, text)
		}
	}
}
