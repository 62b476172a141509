package solver

// permutations returns every ordering of xs. The first element varies
// outermost: each position is chosen in turn and the remainder is permuted
// recursively. Equal values are not deduplicated.
func permutations(xs []float64) [][]float64 {
	if len(xs) <= 1 {
		return [][]float64{append([]float64(nil), xs...)}
	}

	out := make([][]float64, 0, factorial(len(xs)))
	for i, x := range xs {
		rest := make([]float64, 0, len(xs)-1)
		rest = append(rest, xs[:i]...)
		rest = append(rest, xs[i+1:]...)

		for _, p := range permutations(rest) {
			out = append(out, append([]float64{x}, p...))
		}
	}
	return out
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
