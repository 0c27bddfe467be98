package ledger

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// IDGenerator issues entry ids that are strictly greater than every id it
// has issued or observed.
type IDGenerator struct {
	mu   sync.Mutex
	node *snowflake.Node
	last int64
}

// NewIDGenerator creates a generator for the given snowflake node (0-1023).
func NewIDGenerator(node int64) (*IDGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", node, err)
	}
	return &IDGenerator{node: n}, nil
}

// Next returns a fresh id.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.node.Generate().Int64()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe raises the floor so later ids exceed id.
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
