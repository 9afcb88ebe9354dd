package rategate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeLog(t *testing.T) {
	now := time.Unix(0, 1700000000000000000)
	log := []time.Time{now, now.Add(time.Millisecond), now.Add(time.Second)}

	encoded := encodeLog(log)
	assert.Equal(t, "v1|1700000000000000000,1700000000001000000,1700000001000000000", encoded)

	decoded, ok := decodeLog(encoded)
	require.True(t, ok)
	require.Len(t, decoded, 3)
	for i := range log {
		assert.True(t, log[i].Equal(decoded[i]), "timestamp %d should round-trip", i)
	}
}

func TestDecodeLog_Empty(t *testing.T) {
	decoded, ok := decodeLog("")
	require.True(t, ok)
	assert.Empty(t, decoded)

	decoded, ok = decodeLog("v1|")
	require.True(t, ok)
	assert.Empty(t, decoded)
}

func TestDecodeLog_Corrupted(t *testing.T) {
	for _, s := range []string{"v2|123", "garbage", "v1|12,notanumber"} {
		_, ok := decodeLog(s)
		assert.False(t, ok, "%q should not decode", s)
	}
}

func TestPruneLog(t *testing.T) {
	base := time.Unix(1000, 0)
	log := []time.Time{base, base.Add(time.Second), base.Add(2 * time.Second)}

	// A record exactly at the cutoff is expired.
	pruned := pruneLog(log, base.Add(time.Second))
	require.Len(t, pruned, 1)
	assert.True(t, pruned[0].Equal(base.Add(2*time.Second)))

	assert.Len(t, pruneLog(log, base.Add(-time.Second)), 3)
	assert.Empty(t, pruneLog(log, base.Add(time.Hour)))
}

func TestQuotaValidate(t *testing.T) {
	assert.NoError(t, Quota{MaxCalls: 1, Window: time.Millisecond}.Validate())
	assert.ErrorIs(t, Quota{MaxCalls: 0, Window: time.Second}.Validate(), ErrInvalidQuota)
	assert.ErrorIs(t, Quota{MaxCalls: 5, Window: -time.Second}.Validate(), ErrInvalidQuota)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, validateKey("default"))
	assert.NoError(t, validateKey("user:42@host.example-1_x"))

	assert.ErrorIs(t, validateKey(""), ErrInvalidKey)
	assert.ErrorIs(t, validateKey("has space"), ErrInvalidKey)
	assert.ErrorIs(t, validateKey("ünïcode"), ErrInvalidKey)

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, validateKey(string(long)), ErrInvalidKey)
}
