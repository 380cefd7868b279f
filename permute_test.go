package getopt

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"pgregory.net/rapid"
)

func TestRotateRuns(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		start, mid, end int
		want            []string
	}{
		{
			name: "equal runs",
			args: []string{"A", "B", "C", "D"},
			start: 0, mid: 2, end: 4,
			want: []string{"C", "D", "A", "B"},
		},
		{
			name: "short run behind long run",
			args: []string{"A", "B", "C", "D", "E"},
			start: 0, mid: 2, end: 5,
			want: []string{"C", "D", "E", "A", "B"},
		},
		{
			name: "long run behind short run",
			args: []string{"A", "B", "C", "D", "E"},
			start: 0, mid: 3, end: 5,
			want: []string{"D", "E", "A", "B", "C"},
		},
		{
			name: "interior window",
			args: []string{"A", "B", "C", "D", "E"},
			start: 1, mid: 3, end: 5,
			want: []string{"A", "D", "E", "B", "C"},
		},
		{
			name: "empty first run",
			args: []string{"A", "B", "C"},
			start: 1, mid: 1, end: 3,
			want: []string{"A", "B", "C"},
		},
		{
			name: "empty second run",
			args: []string{"A", "B", "C"},
			start: 0, mid: 2, end: 2,
			want: []string{"A", "B", "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.args)
			rotateRuns(got, tt.start, tt.mid, tt.end)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, but wanted %v", got, tt.want)
			}
		})
	}
}

func TestRotateRunsMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		args := rapid.SliceOf(rapid.String()).Draw(t, "args")
		start := rapid.IntRange(0, len(args)).Draw(t, "start")
		mid := rapid.IntRange(start, len(args)).Draw(t, "mid")
		end := rapid.IntRange(mid, len(args)).Draw(t, "end")

		want := slices.Concat(args[:start], args[mid:end], args[start:mid], args[end:])

		got := slices.Clone(args)
		rotateRuns(got, start, mid, end)

		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("rotation mismatch (-want +got):\n%s", diff)
		}
	})
}
