package mysort

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"sync"
)

//
// RPC transport, for coordinator and workers in separate processes.
//

// Envelope is the argument of Mailbox.Deliver.
type Envelope struct {
	Src     int
	Tag     Tag
	Payload []int
}

// Ack is the empty reply of Mailbox.Deliver.
type Ack struct{}

// Mailbox is the RPC service a node exposes to its peers.
type Mailbox struct {
	self  int
	inbox *Network
}

// Deliver queues env in the local inbox.
func (m *Mailbox) Deliver(env *Envelope, ack *Ack) error {
	if !env.Tag.valid() {
		return errBadTag
	}
	return m.inbox.Endpoint(env.Src).Send(context.Background(), env.Payload, m.self, env.Tag)
}

var errUnknownPeer = errors.New("unknown peer")

// RPCNode is a Transport over net/rpc. Peers are addressed through a
// static id -> address table.
type RPCNode struct {
	id    int
	inbox *Network
	ln    net.Listener

	mu      sync.Mutex
	peers   map[int]string
	clients map[int]*rpc.Client
}

// ListenRPC starts node id serving on addr ("127.0.0.1:0" picks a port).
func ListenRPC(id int, addr string) (*RPCNode, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	n := &RPCNode{
		id:      id,
		inbox:   NewNetwork(16),
		ln:      ln,
		peers:   make(map[int]string),
		clients: make(map[int]*rpc.Client),
	}
	server := rpc.NewServer()
	if err := server.RegisterName("Mailbox", &Mailbox{self: id, inbox: n.inbox}); err != nil {
		ln.Close()
		return nil, err
	}
	go server.Accept(ln)
	return n, nil
}

// Addr is the address peers should dial.
func (n *RPCNode) Addr() string { return n.ln.Addr().String() }

// SetPeer records the address of node id.
func (n *RPCNode) SetPeer(id int, addr string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.peers[id] = addr
}

func (n *RPCNode) client(ctx context.Context, id int) (*rpc.Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if c, ok := n.clients[id]; ok {
		return c, nil
	}
	addr, ok := n.peers[id]
	if !ok {
		return nil, errUnknownPeer
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	c := rpc.NewClient(conn)
	n.clients[id] = c
	return c, nil
}

func (n *RPCNode) dropClient(id int, c *rpc.Client) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.clients[id] == c {
		delete(n.clients, id)
		c.Close()
	}
}

func (n *RPCNode) Send(ctx context.Context, payload []int, dest int, tag Tag) error {
	if !tag.valid() {
		return &DeliveryError{Op: "send", Peer: dest, Tag: tag, Err: errBadTag}
	}
	c, err := n.client(ctx, dest)
	if err != nil {
		return &DeliveryError{Op: "send", Peer: dest, Tag: tag, Err: err}
	}
	call := c.Go("Mailbox.Deliver", &Envelope{Src: n.id, Tag: tag, Payload: payload}, &Ack{}, make(chan *rpc.Call, 1))
	select {
	case <-call.Done:
		if call.Error != nil {
			n.dropClient(dest, c)
			return &DeliveryError{Op: "send", Peer: dest, Tag: tag, Err: call.Error}
		}
		return nil
	case <-ctx.Done():
		n.dropClient(dest, c)
		return &DeliveryError{Op: "send", Peer: dest, Tag: tag, Err: ctx.Err()}
	}
}

func (n *RPCNode) Receive(ctx context.Context, src int, tag Tag) ([]int, error) {
	return n.inbox.Endpoint(n.id).Receive(ctx, src, tag)
}

// Close stops serving and closes outgoing connections.
func (n *RPCNode) Close() error {
	n.mu.Lock()
	for id, c := range n.clients {
		c.Close()
		delete(n.clients, id)
	}
	n.mu.Unlock()
	return n.ln.Close()
}
