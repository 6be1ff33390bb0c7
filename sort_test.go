package main

import (
	"context"
	"errors"
	"math"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awooten1/ParallelRadixSort/mysort"
)

func TestParsePeers(t *testing.T) {
	peers, err := parsePeers("1=localhost:7001,2=localhost:7002")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "localhost:7001", 2: "localhost:7002"}, peers)

	peers, err = parsePeers("")
	require.NoError(t, err)
	assert.Empty(t, peers)

	_, err = parsePeers("1:localhost")
	assert.Error(t, err)
	_, err = parsePeers("x=localhost:1")
	assert.Error(t, err)
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.dat")
	out := filepath.Join(dir, "sorted.txt")
	require.NoError(t, os.WriteFile(in, []byte("170 45 75 90\n802 24 2 66\n"), 0o644))

	for _, mode := range []string{"parallel", "inmem"} {
		o, err := parseFlags([]string{"-mode", mode, "-workers", "3", "-input", in, "-output", out})
		require.NoError(t, err)
		require.NoError(t, run(context.Background(), o))
		got, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "2\n24\n45\n66\n75\n90\n170\n802\n", string(got), mode)
	}
}

func TestRunBadMode(t *testing.T) {
	o, err := parseFlags([]string{"-mode", "gpu", "-n", "3"})
	require.NoError(t, err)
	assert.Error(t, run(context.Background(), o))
}

func TestRunRejectsBadDatasetSize(t *testing.T) {
	o, err := parseFlags([]string{"-n", "-1"})
	require.NoError(t, err)
	err = run(context.Background(), o)
	var cerr *mysort.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "n", cerr.Field)
}

func TestRunMaxKeyFullRange(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sorted.txt")
	o, err := parseFlags([]string{"-n", "5", "-max", strconv.Itoa(math.MaxInt), "-output", out})
	require.NoError(t, err)
	require.NoError(t, run(context.Background(), o))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	got, err := mysort.ReadInts(f)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.True(t, slices.IsSorted(got))
}

func TestRunWorkerIDs(t *testing.T) {
	for _, id := range []string{"0", "-2"} {
		o, err := parseFlags([]string{"-mode", "worker", "-id", id})
		require.NoError(t, err)
		var cerr *mysort.ConfigurationError
		require.True(t, errors.As(run(context.Background(), o), &cerr), id)
		assert.Equal(t, "id", cerr.Field)
	}

	o, err := parseFlags([]string{"-mode", "coordinator", "-workers", "1", "-peers", "0=127.0.0.1:1", "-n", "3"})
	require.NoError(t, err)
	var cerr *mysort.ConfigurationError
	require.True(t, errors.As(run(context.Background(), o), &cerr))
	assert.Equal(t, "peers", cerr.Field)
}

// freeAddr reserves a loopback port and releases it for the caller.
func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestRunWorkerAndCoordinator(t *testing.T) {
	workerAddr, coordAddr := freeAddr(t), freeAddr(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "input.dat")
	out := filepath.Join(dir, "sorted.txt")
	require.NoError(t, os.WriteFile(in, []byte("21 1 11 999 0 11\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wo, err := parseFlags([]string{"-mode", "worker", "-id", "1", "-listen", workerAddr, "-coordinator", coordAddr})
	require.NoError(t, err)
	workerDone := make(chan error, 1)
	go func() { workerDone <- run(ctx, wo) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", workerAddr)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 10*time.Millisecond)

	co, err := parseFlags([]string{"-mode", "coordinator", "-workers", "1", "-listen", coordAddr,
		"-peers", "1=" + workerAddr, "-input", in, "-output", out})
	require.NoError(t, err)
	require.NoError(t, run(ctx, co))
	require.NoError(t, <-workerDone)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n11\n11\n21\n999\n", string(got))
}
