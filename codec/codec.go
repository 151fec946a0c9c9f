// Package codec implements the per-record binary encoder and decoder: the
// bit-packed wire representation of a single TradeRecord, including the
// delta/small-value optimizations that depend on state carried from the
// previous record.
package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/quantsignal/tbbocodec/dict"
	"github.com/quantsignal/tbbocodec/endian"
	"github.com/quantsignal/tbbocodec/errs"
	"github.com/quantsignal/tbbocodec/internal/pool"
	"github.com/quantsignal/tbbocodec/record"
	"github.com/quantsignal/tbbocodec/wire"
)

// Encoder writes records in tbbocodec's bit-packed wire format to an
// underlying io.Writer, tracking the previous record's sendtime and exchange
// so it can emit deltas and omissions.
type Encoder struct {
	w            io.Writer
	engine       endian.EndianEngine
	lastTime     uint32
	lastExchange byte
}

// NewEncoder returns an Encoder that writes to w using engine for multi-byte
// fields. Callers pass endian.GetLittleEndianEngine(); the wire format is
// little-endian regardless of host byte order.
func NewEncoder(w io.Writer, engine endian.EndianEngine) *Encoder {
	return &Encoder{w: w, engine: engine}
}

// EncodeRecord writes rec to the encoder's output, using tickerID as looked
// up from the dictionary built during Pass 1. It mutates the encoder's
// last_time/last_exchange state only after a successful write.
func (e *Encoder) EncodeRecord(tickerID uint16, rec record.TradeRecord) error {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	flags := rec.Flags

	// time_diff is computed as signed 64-bit, as the reference encoder does,
	// even though the combined "abs(diff) > 254 OR last_time > sendtime"
	// test makes the abs() redundant: a negative diff always fails the
	// second clause. Preserved for bit-exact compatibility.
	timeDiff := int64(rec.SendTime) - int64(e.lastTime)
	var sendTimeDiff uint8
	if absInt64(timeDiff) > wire.MaxSendTimeDiff || e.lastTime > rec.SendTime {
		sendTimeDiff = 0
	} else {
		sendTimeDiff = uint8(timeDiff)
		flags = wire.SetBit(flags, wire.FlagSendTimeIsDelta)
	}

	if e.lastExchange == rec.Exchange {
		flags = wire.SetBit(flags, wire.FlagExchangeSame)
	}

	var smallSize uint16
	if rec.Size < wire.SmallSizeThreshold {
		smallSize = uint16(rec.Size)
		flags = wire.SetBit(flags, wire.FlagSmallSize)
	}

	var smallPrice int16
	if absInt32(rec.Price.Integer) < wire.SmallPriceThreshold {
		smallPrice = int16(rec.Price.Integer)
		flags = wire.SetBit(flags, wire.FlagSmallPrice)
	}

	buf.B = e.engine.AppendUint16(buf.B, tickerID)
	buf.B = append(buf.B, rec.Condition, flags, byte(rec.Price.Mantissa))

	if wire.IsBitSet(flags, wire.FlagSmallPrice) {
		buf.B = e.engine.AppendUint16(buf.B, uint16(smallPrice))
	} else {
		buf.B = e.engine.AppendUint32(buf.B, uint32(rec.Price.Integer))
	}

	if wire.IsBitSet(flags, wire.FlagSmallSize) {
		buf.B = e.engine.AppendUint16(buf.B, smallSize)
	} else {
		buf.B = e.engine.AppendUint32(buf.B, rec.Size)
	}

	if !wire.IsBitSet(flags, wire.FlagExchangeSame) {
		buf.B = append(buf.B, rec.Exchange)
	}

	if wire.IsBitSet(flags, wire.FlagSendTimeIsDelta) {
		buf.B = append(buf.B, sendTimeDiff)
	} else {
		buf.B = e.engine.AppendUint32(buf.B, rec.SendTime)
	}

	if !wire.IsBitSet(flags, wire.FlagSendRecvSame) {
		buf.B = e.engine.AppendUint32(buf.B, rec.RecvTime)
	}

	if _, err := e.w.Write(buf.B); err != nil {
		return fmt.Errorf("codec: write record: %w", err)
	}

	e.lastTime = rec.SendTime
	e.lastExchange = rec.Exchange

	return nil
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}

	return v
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}

	return v
}

// Decoder reads records from tbbocodec's bit-packed wire format, resolving
// ticker ids against dict and reconstructing deltas using carried state.
type Decoder struct {
	r            *bufio.Reader
	engine       endian.EndianEngine
	dictionary   *dict.Dictionary
	lastTime     uint32
	lastExchange byte
}

// NewDecoder returns a Decoder that reads from r, using engine for
// multi-byte fields and dictionary to resolve ticker ids into symbols.
//
// r must be the same *bufio.Reader used to deserialize the dictionary that
// precedes the record stream (see dict.Deserialize): constructing a second
// bufio.Reader over the same underlying stream would read ahead past the
// dictionary and strand the buffered record bytes in the discarded reader.
func NewDecoder(r *bufio.Reader, engine endian.EndianEngine, dictionary *dict.Dictionary) *Decoder {
	return &Decoder{r: r, engine: engine, dictionary: dictionary}
}

// DecodeRecord reads one record and returns its resolved ticker symbol
// alongside the decoded TradeRecord. It returns io.EOF when the input ends
// cleanly at a record boundary, or errs.ErrTruncatedInput for a short read
// mid-record.
func (d *Decoder) DecodeRecord() (string, record.TradeRecord, error) {
	head := make([]byte, wire.RecordHeadSize)
	n, err := io.ReadFull(d.r, head)
	if err == io.EOF && n == 0 {
		return "", record.TradeRecord{}, io.EOF
	}
	if err != nil {
		return "", record.TradeRecord{}, fmt.Errorf("%w: record head: %v", errs.ErrTruncatedInput, err)
	}

	tickerID := d.engine.Uint16(head[0:2])
	var rec record.TradeRecord
	rec.Condition = head[2]
	rec.Flags = head[3]
	rec.Price.Mantissa = int8(head[4])
	rec.Side = record.DecodeSide(rec.Flags)

	if wire.IsBitSet(rec.Flags, wire.FlagSmallPrice) {
		b, err := d.readN(2)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.Price.Integer = int32(int16(d.engine.Uint16(b)))
	} else {
		b, err := d.readN(4)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.Price.Integer = int32(d.engine.Uint32(b))
	}

	if wire.IsBitSet(rec.Flags, wire.FlagSmallSize) {
		b, err := d.readN(2)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.Size = uint32(d.engine.Uint16(b))
	} else {
		b, err := d.readN(4)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.Size = d.engine.Uint32(b)
	}

	if wire.IsBitSet(rec.Flags, wire.FlagExchangeSame) {
		rec.Exchange = d.lastExchange
	} else {
		b, err := d.readN(1)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.Exchange = b[0]
	}

	if wire.IsBitSet(rec.Flags, wire.FlagSendTimeIsDelta) {
		b, err := d.readN(1)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.SendTimeDiff = b[0]
		rec.SendTime = d.lastTime + uint32(rec.SendTimeDiff)
	} else {
		b, err := d.readN(4)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.SendTime = d.engine.Uint32(b)
	}

	if wire.IsBitSet(rec.Flags, wire.FlagSendRecvSame) {
		rec.RecvTime = rec.SendTime
	} else {
		b, err := d.readN(4)
		if err != nil {
			return "", record.TradeRecord{}, err
		}
		rec.RecvTime = d.engine.Uint32(b)
	}

	symbol, ok := d.dictionary.LookupByID(tickerID)
	if !ok {
		return "", record.TradeRecord{}, fmt.Errorf("%w: id %d", errs.ErrUnknownTicker, tickerID)
	}

	d.lastTime = rec.SendTime
	d.lastExchange = rec.Exchange

	return symbol, rec, nil
}

// readN reads exactly n bytes, translating any error (including a clean
// EOF, since a record's tail is never a valid truncation point) to
// errs.ErrTruncatedInput.
func (d *Decoder) readN(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTruncatedInput, err)
	}

	return b, nil
}
