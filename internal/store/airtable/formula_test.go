package airtable

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"program-portal-go/internal/store"
	"strings"
	"testing"
)

// readLiteral scans a single-quoted literal starting at s[0] using the
// formula grammar: '' is an escaped quote and \ escapes the next character.
// It returns the decoded value and the remainder after the closing quote.
func readLiteral(t *testing.T, s string) (string, string) {
	t.Helper()
	require.True(t, strings.HasPrefix(s, "'"), "literal must start with a quote: %q", s)

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			require.Less(t, i+1, len(s), "dangling escape in %q", s)
			i++
			b.WriteByte(s[i])
		case '\'':
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i++
				continue
			}
			return b.String(), s[i+1:]
		default:
			b.WriteByte(s[i])
		}
	}
	t.Fatalf("unterminated literal %q", s)
	return "", ""
}

func TestFormulaEquals(t *testing.T) {
	f, err := Formula(store.Equals{Field: "Slug", Value: "cpr-basics"})
	require.NoError(t, err)
	assert.Equal(t, "{Slug} = 'cpr-basics'", f)
}

func TestFormulaContains(t *testing.T) {
	f, err := Formula(store.Contains{Field: "Programs", Value: "cpr"})
	require.NoError(t, err)
	assert.Equal(t, "FIND(',cpr,', ',' & ARRAYJOIN({Programs}, ',') & ',') > 0", f)
}

func TestFormulaNil(t *testing.T) {
	f, err := Formula(nil)
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestFormulaEscapesQuote(t *testing.T) {
	f, err := Formula(store.Equals{Field: "Slug", Value: "o'brien"})
	require.NoError(t, err)
	assert.Equal(t, "{Slug} = 'o''brien'", f)
}

func TestFormulaCannotBeEscaped(t *testing.T) {
	hostile := []string{
		"o'brien",
		`back\slash`,
		`trailing\`,
		`\'`,
		`' OR TRUE() OR '`,
		`x') , TRUE(), ('`,
		`{Slug}`,
		`a" & "b`,
		"new\nline",
		"",
	}

	for _, slug := range hostile {
		t.Run(slug, func(t *testing.T) {
			f, err := Formula(store.Equals{Field: "Slug", Value: slug})
			require.NoError(t, err)

			prefix := "{Slug} = "
			require.True(t, strings.HasPrefix(f, prefix))

			value, rest := readLiteral(t, strings.TrimPrefix(f, prefix))
			assert.Equal(t, slug, value)
			assert.Empty(t, rest, "nothing may follow the literal")

			f, err = Formula(store.Contains{Field: "Programs", Value: slug})
			require.NoError(t, err)
			if strings.Contains(slug, ",") {
				assert.Equal(t, "FALSE()", f)
				return
			}

			prefix = "FIND("
			value, rest = readLiteral(t, strings.TrimPrefix(f, prefix))
			assert.Equal(t, ","+slug+",", value)
			assert.Equal(t, ", ',' & ARRAYJOIN({Programs}, ',') & ',') > 0", rest)
		})
	}
}

func TestFieldRefStripsBraces(t *testing.T) {
	assert.Equal(t, "{Sort Order}", fieldRef("Sort Order"))
	assert.Equal(t, "{Slug) & (x}", fieldRef("Slug}) & ({x"))
}

func TestFormulaContainsWithSeparatorMatchesNothing(t *testing.T) {
	// ",a,b," would otherwise match a record linked to both "a" and "b".
	f, err := Formula(store.Contains{Field: "Programs", Value: "a,b"})
	require.NoError(t, err)
	assert.Equal(t, "FALSE()", f)
}
