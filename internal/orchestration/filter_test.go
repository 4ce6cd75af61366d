package orchestration

import (
	"testing"

	"github.com/myst-nvim/fixcheck/internal/checks"
	"github.com/myst-nvim/fixcheck/internal/projectconfig"
	"github.com/stretchr/testify/require"
)

func names(cs []checks.Checker) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

func TestFilterCheckers(t *testing.T) {
	all := checks.Builtin(projectconfig.New())

	tests := []struct {
		name     string
		patterns []string
		want     []string
	}{
		{name: "no patterns", patterns: nil, want: names(all)},
		{name: "exact", patterns: []string{"Comment Updates"}, want: []string{"Comment Updates"}},
		{name: "glob keeps order", patterns: []string{"*Files*", "Priority*"}, want: []string{"Priority Parameter Removal", "New Files Created"}},
		{name: "no match", patterns: []string{"nothing"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FilterCheckers(all, tt.patterns)
			require.NoError(t, err)
			require.Equal(t, tt.want, names(got))
		})
	}

	_, err := FilterCheckers(all, []string{"[bad"})
	require.ErrorContains(t, err, "invalid check filter pattern")
}
