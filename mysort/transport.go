package mysort

import (
	"context"
	"errors"
	"sync"
)

// Transport is the message channel between the coordinator and workers.
// Both operations block until delivery or until ctx is done.
type Transport interface {
	Send(ctx context.Context, payload []int, dest int, tag Tag) error
	Receive(ctx context.Context, src int, tag Tag) ([]int, error)
}

var errBadTag = errors.New("unsupported tag")

type route struct {
	src, dst int
	tag      Tag
}

// Network is an in-process mailbox connecting endpoints by id. A message
// from src to dst with a tag is queued until dst receives from src with
// the same tag.
type Network struct {
	depth int

	mu    sync.Mutex
	boxes map[route]chan []int
}

// NewNetwork returns a Network whose queues hold depth undelivered
// messages per (src, dst, tag) before Send blocks.
func NewNetwork(depth int) *Network {
	if depth < 1 {
		depth = 1
	}
	return &Network{depth: depth, boxes: make(map[route]chan []int)}
}

func (n *Network) box(r route) chan []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch, ok := n.boxes[r]
	if !ok {
		ch = make(chan []int, n.depth)
		n.boxes[r] = ch
	}
	return ch
}

// Endpoint returns the Transport used by the node with the given id.
func (n *Network) Endpoint(id int) Transport {
	return &endpoint{id: id, net: n}
}

type endpoint struct {
	id  int
	net *Network
}

func (e *endpoint) Send(ctx context.Context, payload []int, dest int, tag Tag) error {
	if !tag.valid() {
		return &DeliveryError{Op: "send", Peer: dest, Tag: tag, Err: errBadTag}
	}
	msg := make([]int, len(payload))
	copy(msg, payload)
	select {
	case e.net.box(route{e.id, dest, tag}) <- msg:
		return nil
	case <-ctx.Done():
		return &DeliveryError{Op: "send", Peer: dest, Tag: tag, Err: ctx.Err()}
	}
}

func (e *endpoint) Receive(ctx context.Context, src int, tag Tag) ([]int, error) {
	if !tag.valid() {
		return nil, &DeliveryError{Op: "receive", Peer: src, Tag: tag, Err: errBadTag}
	}
	select {
	case msg := <-e.net.box(route{src, e.id, tag}):
		return msg, nil
	case <-ctx.Done():
		return nil, &DeliveryError{Op: "receive", Peer: src, Tag: tag, Err: ctx.Err()}
	}
}
