package textutil

// SimilarityRatio computes a character-level similarity ratio in [0,1]
// between two strings: twice the number of characters in common matching
// blocks divided by the total length. Identical strings score 1.0, disjoint
// strings 0, and either input being empty scores 0.
func SimilarityRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matched := matchedChars(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

type span struct {
	alo, ahi, blo, bhi int
}

// matchedChars sums the sizes of all matching blocks: it finds the longest
// common contiguous run, then recurses into the regions on either side.
func matchedChars(a, b []rune) int {
	total := 0
	queue := []span{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, size := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if size == 0 {
			continue
		}
		total += size
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+size < s.ahi && j+size < s.bhi {
			queue = append(queue, span{i + size, s.ahi, j + size, s.bhi})
		}
	}
	return total
}

// longestMatch locates the longest run of characters common to
// a[alo:ahi] and b[blo:bhi]. Of equally long runs, the earliest in a (then
// earliest in b) wins, keeping the result deterministic.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	positions := make(map[rune][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		positions[b[j]] = append(positions[b[j]], j)
	}

	besti, bestj = alo, blo
	runs := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for _, j := range positions[a[i]] {
			k := runs[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		runs = next
	}
	return besti, bestj, bestsize
}
