package permission

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitfield_Values(t *testing.T) {
	require.Equal(t, Bitfield(2), KickMembers)
	require.Equal(t, Bitfield(4), BanMembers)
	require.Equal(t, Bitfield(8), Administrator)
	require.Equal(t, Bitfield(1<<40), ModerateMembers)
}

func TestBitfield_Ops(t *testing.T) {
	b := Combine(KickMembers, BanMembers)
	require.True(t, b.Has(KickMembers))
	require.True(t, b.Has(KickMembers|BanMembers))
	require.False(t, b.Has(KickMembers|Administrator))
	require.True(t, b.Any(KickMembers|Administrator))

	b = b.Remove(KickMembers).Add(Administrator)
	require.Equal(t, BanMembers|Administrator, b)
	require.Equal(t, "12", b.String())
}

func TestBitfield_JSON(t *testing.T) {
	data, err := json.Marshal(Combine(KickMembers, ModerateMembers))
	require.NoError(t, err)
	require.Equal(t, `"1099511627778"`, string(data))

	var b Bitfield
	require.NoError(t, json.Unmarshal([]byte(`"6"`), &b))
	require.Equal(t, KickMembers|BanMembers, b)

	require.NoError(t, json.Unmarshal([]byte(`8`), &b))
	require.Equal(t, Administrator, b)

	require.NoError(t, json.Unmarshal([]byte(`null`), &b))
	require.Zero(t, b)

	require.Error(t, json.Unmarshal([]byte(`"abc"`), &b))
	require.Error(t, json.Unmarshal([]byte(`true`), &b))
}
