package graph

import "testing"

func TestP95(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{
			name:   "ten values takes index nine",
			values: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			want:   10,
		},
		{
			name:   "unsorted input is sorted first",
			values: []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5},
			want:   10,
		},
		{
			name:   "empty returns guard value",
			values: nil,
			want:   1,
		},
		{
			name:   "zeros and negatives filtered out",
			values: []float64{0, -3, 0, -1},
			want:   1,
		},
		{
			name:   "single positive value",
			values: []float64{4.2},
			want:   4.2,
		},
		{
			name:   "mixed sign keeps only positives",
			values: []float64{-5, 3, 0, 1, 2},
			want:   3, // positives [1 2 3], floor(0.95×3)=2 → value 3
		},
		{
			name:   "twenty values takes index nineteen",
			values: sequence(20),
			want:   20,
		},
		{
			name:   "twenty one values takes index nineteen",
			values: sequence(21),
			want:   20, // floor(0.95×21)=19 → 0-based index into [1..21]
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := P95(tc.values); got != tc.want {
				t.Errorf("P95(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

// sequence returns [1, 2, ..., n] as floats.
func sequence(n int) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(i + 1)
	}
	return vals
}
