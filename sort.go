// Command sort runs a distributed radix sort over a bounded integer
// dataset, either in one process or across processes over RPC.
//
//	sort -n 1000 -max 1000 -workers 4
//	sort -input input.dat -output sorted.txt
//	sort -mode worker -id 1 -listen :7001 -coordinator host:7000
//	sort -mode coordinator -listen :7000 -peers 1=host:7001,2=host:7002
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/awooten1/ParallelRadixSort/mysort"
)

type options struct {
	cfg         mysort.Config
	mode        string
	n           int
	seed        uint64
	input       string
	output      string
	id          int
	listen      string
	coordinator string
	peers       string
	verbose     bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{cfg: mysort.DefaultConfig()}
	fs := flag.NewFlagSet("sort", flag.ContinueOnError)
	fs.IntVar(&o.cfg.Workers, "workers", o.cfg.Workers, "number of worker units")
	fs.IntVar(&o.cfg.Base, "base", o.cfg.Base, "radix base")
	fs.IntVar(&o.cfg.MaxKey, "max", o.cfg.MaxKey, "largest key in the dataset")
	fs.DurationVar(&o.cfg.Timeout, "timeout", o.cfg.Timeout, "per-message delivery timeout (0 waits forever)")
	fs.StringVar(&o.cfg.Strategy, "strategy", "", "aggregation for -mode inmem: tournament or fold")
	fs.StringVar(&o.mode, "mode", "parallel", "parallel, inmem, coordinator or worker")
	fs.IntVar(&o.n, "n", 1000, "number of random elements when -input is not set")
	fs.Uint64Var(&o.seed, "seed", 1, "random dataset seed")
	fs.StringVar(&o.input, "input", "", "file of whitespace-delimited integers")
	fs.StringVar(&o.output, "output", "", "write the sorted sequence here instead of stdout")
	fs.IntVar(&o.id, "id", 1, "worker id for -mode worker")
	fs.StringVar(&o.listen, "listen", "127.0.0.1:0", "RPC listen address")
	fs.StringVar(&o.coordinator, "coordinator", "", "coordinator address for -mode worker")
	fs.StringVar(&o.peers, "peers", "", "worker addresses for -mode coordinator: id=addr,...")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func parsePeers(s string) (map[int]string, error) {
	peers := make(map[int]string)
	for _, kv := range strings.Split(s, ",") {
		if kv == "" {
			continue
		}
		id, addr, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("peer %q: want id=addr", kv)
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("peer %q: %w", kv, err)
		}
		peers[n] = addr
	}
	return peers, nil
}

func loadDataset(o *options) ([]int, error) {
	if o.input == "" {
		if o.n < 0 {
			return nil, &mysort.ConfigurationError{Field: "n", Reason: fmt.Sprintf("dataset size must be non-negative, got %d", o.n)}
		}
		if o.cfg.MaxKey < 0 {
			return nil, o.cfg.Validate()
		}
		return mysort.RandomInts(o.n, o.cfg.MaxKey, o.seed), nil
	}
	f, err := os.Open(o.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mysort.ReadInts(f)
}

func writeResult(o *options, seq []int) error {
	var w io.Writer = os.Stdout
	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return mysort.WriteInts(w, seq)
}

func run(ctx context.Context, o *options) error {
	if o.cfg.Logger == nil {
		o.cfg.Logger = slog.Default()
	}
	switch o.mode {
	case "worker":
		if o.id < 1 {
			return &mysort.ConfigurationError{Field: "id", Reason: fmt.Sprintf("worker ids start at 1, got %d", o.id)}
		}
		node, err := mysort.ListenRPC(o.id, o.listen)
		if err != nil {
			return err
		}
		defer node.Close()
		node.SetPeer(mysort.CoordinatorID, o.coordinator)
		o.cfg.Logger.Info("worker listening", "worker", o.id, "addr", node.Addr())
		return mysort.NewWorker(o.id, o.cfg, node).Run(ctx)
	}

	data, err := loadDataset(o)
	if err != nil {
		return err
	}

	var sorted []int
	switch o.mode {
	case "parallel":
		sorted, err = (&mysort.ParallelSorter{Config: o.cfg}).Sort(ctx, data)
	case "inmem":
		sorted, err = (&mysort.InMemSorter{Config: o.cfg}).Sort(ctx, data)
	case "coordinator":
		sorted, err = runCoordinator(ctx, o, data)
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
	if err != nil {
		return err
	}
	return writeResult(o, sorted)
}

func runCoordinator(ctx context.Context, o *options, data []int) ([]int, error) {
	peers, err := parsePeers(o.peers)
	if err != nil {
		return nil, err
	}
	if len(peers) != o.cfg.Workers {
		return nil, fmt.Errorf("%d peers given for %d workers", len(peers), o.cfg.Workers)
	}
	for id := range peers {
		if id < 1 || id > o.cfg.Workers {
			return nil, &mysort.ConfigurationError{Field: "peers", Reason: fmt.Sprintf("worker id %d outside 1..%d", id, o.cfg.Workers)}
		}
	}
	node, err := mysort.ListenRPC(mysort.CoordinatorID, o.listen)
	if err != nil {
		return nil, err
	}
	defer node.Close()
	for id, addr := range peers {
		node.SetPeer(id, addr)
	}
	o.cfg.Logger.Info("coordinator listening", "addr", node.Addr())
	return mysort.NewCoordinator(o.cfg, node).Sort(ctx, data)
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	o.cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, o); err != nil {
		o.cfg.Logger.Error("sort failed", "err", err)
		os.Exit(1)
	}
}
