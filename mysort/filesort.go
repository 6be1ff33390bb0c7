package mysort

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
)

/////////////////////////
// DATASET SOURCES
////////////////////////

// ReadInts reads whitespace-delimited integers from r.
func ReadInts(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	var data []int
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", len(data), err)
		}
		data = append(data, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// RandomInts returns n values drawn uniformly from [0, maxKey]. The same
// seed yields the same data. It panics if n < 0 or maxKey < 0.
func RandomInts(n, maxKey int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	bound := uint64(maxKey) + 1 // fits: maxKey <= math.MaxInt
	data := make([]int, n)
	for i := range data {
		data[i] = int(rng.Uint64N(bound))
	}
	return data
}

// WriteInts writes seq to w, one value per line.
func WriteInts(w io.Writer, seq []int) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, v := range seq {
		buf = strconv.AppendInt(buf[:0], int64(v), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
