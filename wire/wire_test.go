package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBit_IsBitSet(t *testing.T) {
	for bit := 0; bit < 8; bit++ {
		flags := SetBit(0, bit)
		require.True(t, IsBitSet(flags, bit))

		for other := 0; other < 8; other++ {
			if other == bit {
				continue
			}
			require.False(t, IsBitSet(flags, other))
		}
	}
}

func TestSetBit_Cumulative(t *testing.T) {
	flags := byte(0)
	flags = SetBit(flags, FlagSideBit0)
	flags = SetBit(flags, FlagSmallPrice)

	require.True(t, IsBitSet(flags, FlagSideBit0))
	require.True(t, IsBitSet(flags, FlagSmallPrice))
	require.False(t, IsBitSet(flags, FlagSideBit1))
}
