package contracts

import (
	"testing"

	"github.com/hilthontt/chatrelay/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRoutingKey_CoversEveryEventType(t *testing.T) {
	req := require.New(t)

	for eventType, want := range routingKeys {
		got, ok := RoutingKey(eventType)
		req.True(ok)
		req.Equal(want, got)
		req.Contains(AllRoutingKeys(), got)
	}
	req.Len(AllRoutingKeys(), len(routingKeys))

	_, ok := RoutingKey(domain.ChannelEventType("unknown"))
	req.False(ok)
}
