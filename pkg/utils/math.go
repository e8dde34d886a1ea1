package utils

// Mod returns a modulo n in the range [0, n).
// n must be positive.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// ShortestHops reports how to reach offset on a ring of size n in the fewest
// hops: the hop count and whether to walk forward.
func ShortestHops(offset, n int) (hops int, forward bool) {
	hops = Mod(offset, n)
	if back := n - hops; hops > n/2 && back < hops {
		return back, false
	}
	return hops, true
}
