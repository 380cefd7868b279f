package getopt

// rotateRuns rotates args[start:end] in place so that the run
// args[start:mid] moves behind args[mid:end], preserving the relative order
// within each run. The rotation walks gcd(len1, len2) independent swap
// cycles, giving O(n) swaps and no extra space. It knows nothing about
// option semantics and never resizes the slice.
func rotateRuns(args []string, start, mid, end int) {
	n1 := mid - start // first run (the non-options)
	n2 := end - mid   // second run (the options)
	if n1 <= 0 || n2 <= 0 {
		return
	}

	cycles := gcd(n1, n2)
	for i := 0; i < cycles; i++ {
		anchor := start + i
		pos := anchor
		for {
			next := pos + n2
			if pos >= mid {
				next = pos - n1
			}
			if next == anchor {
				break
			}
			args[anchor], args[next] = args[next], args[anchor]
			pos = next
		}
	}
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// exchange moves the pending non-option run behind the option tokens
// scanned since it closed, then re-anchors the run bounds just before the
// cursor.
func (s *State) exchange() {
	runLen := s.nonOptEnd - s.nonOptStart
	rotateRuns(s.args, s.nonOptStart, s.nonOptEnd, s.optInd)
	s.nonOptStart = s.optInd - runLen
	s.nonOptEnd = s.optInd
}
