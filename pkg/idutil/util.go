package idutil

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// MinIDLength and MaxIDLength bound the length of an id accepted as a
	// single entity key. Anything else means "every entity".
	MinIDLength = 17
	MaxIDLength = 18

	// DiscordEpoch is the first millisecond of 2015, in unix milliseconds.
	DiscordEpoch int64 = 1420070400000
)

// IsValidID reports whether id can address a single entity.
func IsValidID(id string) bool {
	return len(id) >= MinIDLength && len(id) <= MaxIDLength
}

// CreatedAt extracts the creation time embedded in a snowflake id.
func CreatedAt(id string) (time.Time, error) {
	sID, err := snowflake.ParseString(id)
	if err != nil {
		return time.Time{}, err
	}

	return time.UnixMilli((sID.Int64() >> 22) + DiscordEpoch).UTC(), nil
}

// NonceGenerator produces unique message nonces. It is safe for concurrent
// use.
type NonceGenerator struct {
	node *snowflake.Node
}

func NewNonceGenerator(node int64) (*NonceGenerator, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}

	return &NonceGenerator{node: n}, nil
}

func (g *NonceGenerator) Next() string {
	return g.node.Generate().String()
}
