package mysort

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

/////////////////////////
// PARALLEL SORT
////////////////////////

// ParallelSorter runs one coordinator and cfg.Workers workers as
// goroutines connected by an in-process Network.
type ParallelSorter struct {
	Config Config
}

func (ps *ParallelSorter) Sort(ctx context.Context, data []int) ([]int, error) {
	if err := ps.Config.Validate(); err != nil {
		return nil, err
	}
	network := NewNetwork(1)
	g, ctx := errgroup.WithContext(ctx)
	for id := 1; id <= ps.Config.Workers; id++ {
		w := NewWorker(id, ps.Config, network.Endpoint(id))
		g.Go(func() error { return w.Run(ctx) })
	}
	var result []int
	g.Go(func() error {
		var err error
		result, err = NewCoordinator(ps.Config, network.Endpoint(CoordinatorID)).Sort(ctx, data)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Coordinator partitions a dataset, dispatches one partition per worker,
// collects the sorted partitions in dispatch order and merges them.
type Coordinator struct {
	cfg       Config
	transport Transport
	log       *slog.Logger
}

func NewCoordinator(cfg Config, t Transport) *Coordinator {
	return &Coordinator{cfg: cfg, transport: t, log: cfg.logger().With("role", "coordinator")}
}

func (c *Coordinator) Sort(ctx context.Context, data []int) ([]int, error) {
	parts, err := partition(c.cfg, data)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	c.log.Info("sort started", "size", len(data), "workers", len(parts), "passes", c.cfg.Passes())

	for _, p := range parts {
		if err := c.send(ctx, p.Data, p.ID); err != nil {
			return nil, err
		}
		c.log.Debug("partition dispatched", "worker", p.ID, "size", len(p.Data))
	}

	sorted := make([][]int, len(parts))
	for i, p := range parts {
		res, err := c.receive(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if len(res) != len(p.Data) {
			return nil, &DeliveryError{Op: "receive", Peer: p.ID, Tag: TagResult,
				Err: fmt.Errorf("got %d elements, dispatched %d", len(res), len(p.Data))}
		}
		c.log.Debug("result collected", "worker", p.ID, "size", len(res))
		sorted[i] = res
	}

	out, err := Aggregate(sorted)
	if err != nil {
		return nil, err
	}
	c.log.Info("sort finished", "size", len(out), "elapsed", time.Since(start))
	return out, nil
}

func (c *Coordinator) send(ctx context.Context, payload []int, dest int) error {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	return c.transport.Send(ctx, payload, dest, TagPartition)
}

func (c *Coordinator) receive(ctx context.Context, src int) ([]int, error) {
	ctx, cancel := withTimeout(ctx, c.cfg.Timeout)
	defer cancel()
	return c.transport.Receive(ctx, src, TagResult)
}

// Worker radix-sorts the single partition it receives from the
// coordinator and sends it back.
type Worker struct {
	ID        int
	cfg       Config
	transport Transport
	log       *slog.Logger
}

func NewWorker(id int, cfg Config, t Transport) *Worker {
	return &Worker{ID: id, cfg: cfg, transport: t, log: cfg.logger().With("role", "worker", "worker", id)}
}

// Run handles exactly one partition. Waiting for the partition is not
// bounded by cfg.Timeout; cancel ctx to stop an idle worker.
func (w *Worker) Run(ctx context.Context) error {
	data, err := w.transport.Receive(ctx, CoordinatorID, TagPartition)
	if err != nil {
		return err
	}
	w.log.Debug("partition received", "size", len(data))

	sorted := RadixSort(data, w.cfg.Base, w.cfg.Passes())

	sctx, cancel := withTimeout(ctx, w.cfg.Timeout)
	defer cancel()
	if err := w.transport.Send(sctx, sorted, CoordinatorID, TagResult); err != nil {
		return err
	}
	w.log.Debug("result sent", "size", len(sorted))
	return nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
