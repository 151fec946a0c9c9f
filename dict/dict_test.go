package dict

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quantsignal/tbbocodec/errs"
	"github.com/quantsignal/tbbocodec/wire"
)

func TestDictionary_InsertAssignsSequentialIDs(t *testing.T) {
	d := New()

	id1, err := d.Insert("AAPL")
	require.NoError(t, err)
	require.Equal(t, uint16(1), id1)

	id2, err := d.Insert("MSFT")
	require.NoError(t, err)
	require.Equal(t, uint16(2), id2)

	require.Equal(t, 2, d.Len())
}

func TestDictionary_LookupBySymbol_Absent(t *testing.T) {
	d := New()
	require.Equal(t, uint16(0), d.LookupBySymbol("AAPL"))
}

func TestDictionary_LookupByID_RoundTrip(t *testing.T) {
	d := New()
	id, err := d.Insert("AAPL")
	require.NoError(t, err)

	symbol, ok := d.LookupByID(id)
	require.True(t, ok)
	require.Equal(t, "AAPL", symbol)

	_, ok = d.LookupByID(id + 1)
	require.False(t, ok)
}

func TestDictionary_Increment(t *testing.T) {
	d := New()
	id, err := d.Insert("AAPL")
	require.NoError(t, err)

	gotID := d.Increment("AAPL")
	require.Equal(t, id, gotID)
	require.Equal(t, uint16(2), d.entries[0].Frequency)

	require.Equal(t, uint16(0), d.Increment("UNKNOWN"))
}

func TestDictionary_Full(t *testing.T) {
	d := New()
	d.nextID = wire.MaxDictionaryID

	_, err := d.Insert("LAST")
	require.NoError(t, err)

	_, err = d.Insert("OVERFLOW")
	require.ErrorIs(t, err, errs.ErrDictionaryFull)
}

// TestDictionary_SerializeDeserialize_RoundTrip covers §8's dictionary
// identity property: decompressing what was compressed reproduces the same
// ticker-id-to-symbol mapping in the same insertion order.
func TestDictionary_SerializeDeserialize_RoundTrip(t *testing.T) {
	d := New()
	_, err := d.Insert("AAPL")
	require.NoError(t, err)
	_, err = d.Insert("MSFT")
	require.NoError(t, err)
	_, err = d.Insert("GOOG")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Serialize(&buf))

	got, err := Deserialize(bufio.NewReader(&buf))
	require.NoError(t, err)

	require.Equal(t, d.entries, got.entries)
}

// TestDictionary_Serialize_SentinelLayout pins the exact byte layout written
// after the last entry: two stray zero bytes, then the sentinel string, then
// its own terminating zero byte.
func TestDictionary_Serialize_SentinelLayout(t *testing.T) {
	d := New()
	_, err := d.Insert("AAPL")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.Serialize(&buf))

	want := []byte{1, 0} // id=1, little-endian
	want = append(want, []byte("AAPL")...)
	want = append(want, 0)       // symbol terminator
	want = append(want, 0, 0)    // stray padding bytes
	want = append(want, []byte(wire.EndOfDictionary)...)
	want = append(want, 0) // sentinel terminator

	require.Equal(t, want, buf.Bytes())
}

func TestDeserialize_TruncatedInput(t *testing.T) {
	_, err := Deserialize(bufio.NewReader(bytes.NewReader([]byte{1, 0, 'A'})))
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestDeserialize_EmptyInput(t *testing.T) {
	_, err := Deserialize(bufio.NewReader(bytes.NewReader(nil)))
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestDictionary_Checksum_StableForSameContent(t *testing.T) {
	d1 := New()
	_, err := d1.Insert("AAPL")
	require.NoError(t, err)

	d2 := New()
	_, err = d2.Insert("AAPL")
	require.NoError(t, err)

	sum1, err := d1.Checksum()
	require.NoError(t, err)
	sum2, err := d2.Checksum()
	require.NoError(t, err)

	require.Equal(t, sum1, sum2)
}

func TestDictionary_Checksum_DiffersForDifferentContent(t *testing.T) {
	d1 := New()
	_, err := d1.Insert("AAPL")
	require.NoError(t, err)

	d2 := New()
	_, err = d2.Insert("MSFT")
	require.NoError(t, err)

	sum1, err := d1.Checksum()
	require.NoError(t, err)
	sum2, err := d2.Checksum()
	require.NoError(t, err)

	require.NotEqual(t, sum1, sum2)
}
