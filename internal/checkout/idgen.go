package checkout

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const legacyLayout = "20060102150405"

// IDGenerator produces order ids
type IDGenerator interface {
	NextID(now time.Time) string
}

// SnowflakeGenerator prefix followed by a snowflake id, unique per node
type SnowflakeGenerator struct {
	prefix string
	node   *snowflake.Node
}

func NewSnowflakeGenerator(prefix string, nodeID int64) (*SnowflakeGenerator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errors.Wrapf(err, "snowflake node %d", nodeID)
	}
	return &SnowflakeGenerator{prefix: prefix, node: node}, nil
}

func (g *SnowflakeGenerator) NextID(time.Time) string {
	return g.prefix + g.node.Generate().String()
}

// LegacyGenerator prefix followed by the order time to the second.
// Two orders placed within the same second get the same id.
type LegacyGenerator struct {
	prefix string
}

func NewLegacyGenerator(prefix string) *LegacyGenerator {
	zap.L().Warn("legacy order ids are second-resolution and may collide", zap.String("prefix", prefix))
	return &LegacyGenerator{prefix: prefix}
}

func (g *LegacyGenerator) NextID(now time.Time) string {
	return g.prefix + now.Format(legacyLayout)
}

// NewIDGenerator picks a generator by format name, "snowflake" or "legacy"
func NewIDGenerator(format, prefix string, nodeID int64) (IDGenerator, error) {
	switch format {
	case "", "snowflake":
		return NewSnowflakeGenerator(prefix, nodeID)
	case "legacy":
		return NewLegacyGenerator(prefix), nil
	default:
		return nil, errors.Errorf("unknown order id format %q", format)
	}
}
