package origin

// RecoverByDiff rebuilds a position mapping for text that went through
// an uncontrolled external process (a filter, a code-execution step) by
// aligning the text before (original, the parent's coordinate space)
// and after (transformed). Every maximal run of agreement in a longest
// common subsequence of the two texts becomes one mapping segment;
// bytes present only in transformed are left unmapped.
//
// Cost is proportional to len(original)*len(transformed). Callers on a
// latency-sensitive path should bound input size or run this step off
// the critical path; the cheap builders cover every case where a
// collaborator can preserve positions itself.
func RecoverByDiff(parent *Record, original, transformed string) (*Record, error) {
	return Transformed(parent, alignLCS(original, transformed))
}

// alignLCS computes maximal matching blocks between a (from-space) and
// b (to-space) via the classic LCS dynamic program.
func alignLCS(a, b string) []Segment {
	n, m := len(a), len(b)
	if n == 0 || m == 0 {
		return nil
	}

	// dp[i][j] = LCS length of a[:i] and b[:j], flattened row-major.
	width := m + 1
	dp := make([]uint32, (n+1)*width)
	for i := 1; i <= n; i++ {
		row := i * width
		prev := row - width
		for j := 1; j <= m; j++ {
			if a[i-1] == b[j-1] {
				dp[row+j] = dp[prev+j-1] + 1
			} else if dp[prev+j] >= dp[row+j-1] {
				dp[row+j] = dp[prev+j]
			} else {
				dp[row+j] = dp[row+j-1]
			}
		}
	}

	// Walk back from (n, m), collecting diagonal runs as segments.
	segs := make([]Segment, 0)
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			end := Segment{
				FromEnd: uint32(i),
				ToEnd:   uint32(j),
			}
			for i > 0 && j > 0 && a[i-1] == b[j-1] {
				i--
				j--
			}
			end.FromStart = uint32(i)
			end.ToStart = uint32(j)
			segs = append(segs, end)
		case dp[(i-1)*width+j] >= dp[i*width+j-1]:
			i--
		default:
			j--
		}
	}

	// Blocks were collected back to front.
	for l, r := 0, len(segs)-1; l < r; l, r = l+1, r-1 {
		segs[l], segs[r] = segs[r], segs[l]
	}
	return segs
}
