package mysort

import (
	"context"
	"time"
)

/////////////////////////
// SIMPLE IN-MEM SORT
////////////////////////

// InMemSorter runs the same partition, radix sort and aggregate pipeline
// as ParallelSorter, sequentially and without a transport.
type InMemSorter struct {
	Config Config
}

func (ims *InMemSorter) Sort(ctx context.Context, data []int) ([]int, error) {
	parts, err := partition(ims.Config, data)
	if err != nil {
		return nil, err
	}
	log := ims.Config.logger().With("role", "inmem")
	start := time.Now()
	passes := ims.Config.Passes()

	sorted := make([][]int, len(parts))
	for i, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sorted[i] = RadixSort(p.Data, ims.Config.Base, passes)
		log.Debug("partition sorted", "worker", p.ID, "size", len(p.Data))
	}

	aggregate := Aggregate
	if ims.Config.Strategy == "fold" {
		aggregate = FoldAggregate
	}
	out, err := aggregate(sorted)
	if err != nil {
		return nil, err
	}
	log.Info("sort finished", "size", len(out), "strategy", ims.Config.Strategy, "elapsed", time.Since(start))
	return out, nil
}
