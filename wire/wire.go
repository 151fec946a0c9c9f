// Package wire holds the constants that define tbbocodec's on-disk layout:
// the record flag bits, field sizes, and the dictionary sentinel. Nothing in
// this package allocates or performs I/O; it exists so that record, dict, and
// codec agree on one definition of the wire format instead of each
// redeclaring magic numbers.
package wire

// Flag bit positions within a record's single flag byte. Bits 0-2 encode
// side; the remaining bits each gate whether a field is carried in full or
// abbreviated on the wire.
const (
	FlagSideBit0        = 0
	FlagSideBit1        = 1
	FlagSideBit2        = 2
	FlagSendRecvSame    = 3 // sendtime == recvtime; recvtime omitted
	FlagSendTimeIsDelta = 4 // sendtime carried as a 1-byte diff from last_time
	FlagExchangeSame    = 5 // exchange equals last_exchange; exchange omitted
	FlagSmallSize       = 6 // size carried as 2 bytes instead of 4
	FlagSmallPrice      = 7 // price carried as 2 bytes instead of 4
)

// SmallSizeThreshold is the exclusive upper bound under which a record's size
// fits the 2-byte small-size wire form.
const SmallSizeThreshold = 65534

// SmallPriceThreshold is the exclusive upper bound (in absolute value) under
// which a record's price.Integer fits the 2-byte small-price wire form.
const SmallPriceThreshold = 32767

// MaxSendTimeDiff is the largest sendtime-last_time delta that can be carried
// as a 1-byte diff.
const MaxSendTimeDiff = 254

// EndOfDictionary is the literal sentinel string written after the last
// dictionary entry. It is preceded by two extra zero bytes (see
// dict.Serialize) and followed by a terminating zero byte, mirroring the
// original encoder's dump_dictionary layout exactly.
const EndOfDictionary = "ENDOFDICTIONARY"

// RecordHeadSize is the size, in bytes, of the fixed head written for every
// record: ticker id (2) + condition (1) + flags (1) + mantissa (1).
const RecordHeadSize = 5

// MaxDictionaryID is the largest id a dictionary may assign; id 0 is
// reserved to mean "absent".
const MaxDictionaryID = 65535

// SetBit returns flags with bit set.
func SetBit(flags byte, bit int) byte {
	return flags | (1 << uint(bit))
}

// IsBitSet reports whether bit is set in flags.
func IsBitSet(flags byte, bit int) bool {
	return flags&(1<<uint(bit)) != 0
}
