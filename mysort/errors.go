package mysort

import "fmt"

// ConfigurationError is returned before any dispatch when a run cannot
// start: bad worker count, base or key bound, or an empty input.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "mysort: invalid configuration: " + e.Field + ": " + e.Reason
}

// MalformedInputError identifies an element that is negative or does not
// fit in the configured pass count.
type MalformedInputError struct {
	Partition int // owning worker id
	Index     int // position in the original dataset
	Value     int
	MaxKey    int
}

func (e *MalformedInputError) Error() string {
	reason := fmt.Sprintf("exceeds configured max key %d", e.MaxKey)
	if e.Value < 0 {
		reason = "is negative"
	}
	return fmt.Sprintf("mysort: malformed input: partition %d, element %d: value %d %s",
		e.Partition, e.Index, e.Value, reason)
}

// DeliveryError reports a transport operation that failed or timed out.
type DeliveryError struct {
	Op   string // "send" or "receive"
	Peer int
	Tag  Tag
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mysort: %s %s with peer %d: %v", e.Op, e.Tag, e.Peer, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
