package content

import (
	"github.com/google/go-cmp/cmp"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "whitespace only", raw: " \n\t\r\n ", want: []string{}},
		{name: "single paragraph", raw: "  Welcome.  ", want: []string{"Welcome."}},
		{name: "blank line", raw: "A\n\nB", want: []string{"A", "B"}},
		{name: "bare newline also splits", raw: "A\nB", want: []string{"A", "B"}},
		{name: "crlf blank line", raw: "A\r\n\r\nB", want: []string{"A", "B"}},
		{name: "crlf bare newline", raw: "A\r\nB", want: []string{"A", "B"}},
		{name: "indented blank line", raw: "A\n   \n\tB", want: []string{"A", "B"}},
		{name: "many blank lines", raw: "\n\nA\n\n\n\nB\n\n", want: []string{"A", "B"}},
		{
			name: "mixed",
			raw:  "This program covers airway management.\n\nIt has three parts:\nassessment\nintervention",
			want: []string{
				"This program covers airway management.",
				"It has three parts:",
				"assessment",
				"intervention",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Segment(tt.raw)
			if got == nil {
				t.Fatal("Segment returned nil")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segment(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}
