package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	req := require.New(t)
	t.Setenv("CHATRELAY_TEST_STRING", "value")
	t.Setenv("CHATRELAY_TEST_INT", "42")
	t.Setenv("CHATRELAY_TEST_BAD_INT", "forty-two")
	t.Setenv("CHATRELAY_TEST_BOOL", "true")
	t.Setenv("CHATRELAY_TEST_DURATION", "1500ms")

	req.Equal("value", GetString("CHATRELAY_TEST_STRING", "fallback"))
	req.Equal("fallback", GetString("CHATRELAY_TEST_MISSING", "fallback"))
	req.Equal(42, GetInt("CHATRELAY_TEST_INT", 0))
	req.Equal(7, GetInt("CHATRELAY_TEST_BAD_INT", 7))
	req.True(GetBool("CHATRELAY_TEST_BOOL", false))
	req.Equal(1500*time.Millisecond, GetDuration("CHATRELAY_TEST_DURATION", time.Second))
	req.Equal(time.Second, GetDuration("CHATRELAY_TEST_MISSING", time.Second))
}
