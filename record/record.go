// Package record implements the CSV tokenizer and the TradeRecord type that
// the rest of tbbocodec is built around: parsing one line into a record with
// its side-encoding flag bits already set, and formatting a decoded record
// back into a CSV line.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quantsignal/tbbocodec/errs"
	"github.com/quantsignal/tbbocodec/price"
	"github.com/quantsignal/tbbocodec/wire"
)

// Side is the market side of a trade event. The zero value, SideUnknown, is
// also what decode produces for a flag-bit combination that doesn't match
// any of the five recognized codes.
type Side byte

const (
	SideUnknown Side = iota
	SideAsk          // 'A'
	SideAskUpdate    // 'a'
	SideBid          // 'B'
	SideBidUpdate    // 'b'
	SideTrade        // 'T'
)

// sideByChar and charBySide are the two directions of the CSV <-> Side
// mapping; byte, not rune, because the format only ever uses single-byte
// ASCII side codes.
var sideByChar = map[byte]Side{
	'A': SideAsk,
	'a': SideAskUpdate,
	'B': SideBid,
	'b': SideBidUpdate,
	'T': SideTrade,
}

var charBySide = map[Side]byte{
	SideAsk:       'A',
	SideAskUpdate: 'a',
	SideBid:       'B',
	SideBidUpdate: 'b',
	SideTrade:     'T',
	SideUnknown:   '?',
}

// Byte returns the CSV character for s. Unrecognized sides (including
// SideUnknown) render as '?'.
func (s Side) Byte() byte {
	if c, ok := charBySide[s]; ok {
		return c
	}

	return '?'
}

// FlagBits returns the side's encoding in flag bits 0-2, per the table in
// the CSV record parser's side-to-flag encoding.
func (s Side) FlagBits() byte {
	var flags byte
	switch s {
	case SideAsk:
		flags = wire.SetBit(flags, wire.FlagSideBit0)
	case SideAskUpdate:
		flags = wire.SetBit(flags, wire.FlagSideBit1)
	case SideBid:
		flags = wire.SetBit(flags, wire.FlagSideBit0)
		flags = wire.SetBit(flags, wire.FlagSideBit1)
	case SideBidUpdate:
		flags = wire.SetBit(flags, wire.FlagSideBit2)
	case SideTrade:
		flags = wire.SetBit(flags, wire.FlagSideBit0)
		flags = wire.SetBit(flags, wire.FlagSideBit2)
	}

	return flags
}

// DecodeSide reconstructs a Side from a record's flag byte. A bit
// combination that matches none of the five known patterns decodes as
// SideUnknown.
func DecodeSide(flags byte) Side {
	bit0 := wire.IsBitSet(flags, wire.FlagSideBit0)
	bit1 := wire.IsBitSet(flags, wire.FlagSideBit1)
	bit2 := wire.IsBitSet(flags, wire.FlagSideBit2)

	switch {
	case bit0 && !bit1 && !bit2:
		return SideAsk
	case !bit0 && bit1 && !bit2:
		return SideAskUpdate
	case bit0 && bit1 && !bit2:
		return SideBid
	case !bit0 && !bit1 && bit2:
		return SideBidUpdate
	case bit0 && !bit1 && bit2:
		return SideTrade
	default:
		return SideUnknown
	}
}

// TradeRecord is one trade tick: the in-memory form shared by the encoder
// and decoder.
type TradeRecord struct {
	Ticker       string
	Exchange     byte
	Side         Side
	Condition    byte
	SendTime     uint32
	RecvTime     uint32
	Price        price.Price
	Size         uint32
	Flags        byte
	SendTimeDiff uint8
}

// ParseLine tokenizes a CSV line into a TradeRecord. Fields are not trimmed,
// matching the format's no-escaping, no-whitespace-handling rule. The line
// must supply all eight fields: ticker, exchange, side, condition, sendtime,
// recvtime, price, size.
func ParseLine(line string) (TradeRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 8 {
		return TradeRecord{}, fmt.Errorf("%w: line has %d fields, want 8", errs.ErrMalformedRecord, len(fields))
	}

	var rec TradeRecord
	rec.Ticker = fields[0]
	rec.Exchange = firstByte(fields[1])

	side, ok := sideByChar[firstByte(fields[2])]
	if ok {
		rec.Side = side
	} else {
		rec.Side = SideUnknown
	}
	rec.Flags = rec.Side.FlagBits()

	rec.Condition = firstByte(fields[3])

	sendTime, _ := strconv.ParseInt(fields[4], 10, 64)
	recvTime, _ := strconv.ParseInt(fields[5], 10, 64)
	rec.SendTime = uint32(sendTime)
	rec.RecvTime = uint32(recvTime)

	if rec.SendTime == rec.RecvTime {
		rec.Flags = wire.SetBit(rec.Flags, wire.FlagSendRecvSame)
	}

	rec.Price = price.Parse(fields[6])

	size, _ := strconv.ParseInt(fields[7], 10, 64)
	rec.Size = uint32(size)

	return rec, nil
}

// firstByte returns the first byte of s, or 0 for an empty field.
func firstByte(s string) byte {
	if len(s) == 0 {
		return 0
	}

	return s[0]
}

// FormatLine renders a decoded record as one CSV line terminated by "\r\n",
// in the field order ticker, exchange, side, condition, sendtime, recvtime,
// price, size.
func FormatLine(symbol string, rec TradeRecord) string {
	var b strings.Builder

	b.WriteString(symbol)
	b.WriteByte(',')
	b.WriteByte(rec.Exchange)
	b.WriteByte(',')
	b.WriteByte(rec.Side.Byte())
	b.WriteByte(',')
	b.WriteByte(rec.Condition)
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(rec.SendTime), 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(rec.RecvTime), 10))
	b.WriteByte(',')
	b.WriteString(rec.Price.String())
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(uint64(rec.Size), 10))
	b.WriteString("\r\n")

	return b.String()
}
