package mysort

/////////////////////////
// RADIX SORT
////////////////////////

// Bucket distributes seq into base buckets by the digit at position digit
// (0 = least significant) and returns the buckets concatenated in order.
// Elements keep their relative order inside a bucket. Elements with fewer
// digits than digit+1 land in bucket 0. seq is not modified.
func Bucket(seq []int, digit, base int) []int {
	out := make([]int, len(seq))
	div, ok := digitDivisor(digit, base)
	if !ok {
		// base^digit overflows int: every element has digit 0 here.
		copy(out, seq)
		return out
	}
	bucketInto(out, seq, div, base, make([]int, base))
	return out
}

// RadixSort returns partition sorted in non-decreasing order using passes
// least-significant-first applications of Bucket. passes must be the same
// for every partition of a run, see Passes.
func RadixSort(partition []int, base, passes int) []int {
	src := make([]int, len(partition))
	copy(src, partition)
	if len(src) < 2 {
		return src
	}
	dst := make([]int, len(src))
	counts := make([]int, base)
	for d := 0; d < passes; d++ {
		div, ok := digitDivisor(d, base)
		if !ok {
			break
		}
		bucketInto(dst, src, div, base, counts)
		src, dst = dst, src
	}
	return src
}

// bucketInto is one stable counting pass from src into dst. counts must
// have length base; it is reset here.
func bucketInto(dst, src []int, div, base int, counts []int) {
	clear(counts)
	for _, v := range src {
		counts[(v/div)%base]++
	}
	total := 0
	for i, c := range counts {
		counts[i] = total
		total += c
	}
	for _, v := range src {
		d := (v / div) % base
		dst[counts[d]] = v
		counts[d]++
	}
}

// digitDivisor returns base^digit, or false if it does not fit in an int.
func digitDivisor(digit, base int) (int, bool) {
	div := 1
	for i := 0; i < digit; i++ {
		if div > maxInt/base {
			return 0, false
		}
		div *= base
	}
	return div, true
}

const maxInt = int(^uint(0) >> 1)
