// Package dict implements the ticker dictionary: the ordered id<->symbol
// table written once at the start of a compressed stream. The reference
// encoder keeps this as a linked list; this package generalizes it into an
// ordered slice plus a symbol index, per the "Linked list -> ordered map"
// design note, while keeping Serialize's byte layout identical.
package dict

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/quantsignal/tbbocodec/endian"
	"github.com/quantsignal/tbbocodec/errs"
	"github.com/quantsignal/tbbocodec/internal/hash"
	"github.com/quantsignal/tbbocodec/wire"
)

// Entry is one dictionary row.
type Entry struct {
	ID        uint16
	Symbol    string
	Frequency uint16
}

// Dictionary is an ordered id<->symbol table. Create one with New (the zero
// value has no index maps and is not usable); ids start at 1, with 0
// reserved to mean "absent".
type Dictionary struct {
	entries []Entry
	byID    map[uint16]int // index into entries
	bySym   map[string]int
	nextID  uint32 // wider than uint16 so it can represent "one past MaxDictionaryID" without wrapping
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{
		byID:   make(map[uint16]int),
		bySym:  make(map[string]int),
		nextID: 1,
	}
}

// LookupBySymbol returns the id assigned to symbol, or 0 if it is absent.
func (d *Dictionary) LookupBySymbol(symbol string) uint16 {
	if idx, ok := d.bySym[symbol]; ok {
		return d.entries[idx].ID
	}

	return 0
}

// LookupByID returns the symbol assigned to id, and whether it was found.
func (d *Dictionary) LookupByID(id uint16) (string, bool) {
	idx, ok := d.byID[id]
	if !ok {
		return "", false
	}

	return d.entries[idx].Symbol, true
}

// Insert assigns the next id to symbol, with frequency 1, and returns the
// assigned id. It fails with errs.ErrDictionaryFull once every id up to
// wire.MaxDictionaryID has been handed out.
func (d *Dictionary) Insert(symbol string) (uint16, error) {
	if d.nextID > wire.MaxDictionaryID {
		return 0, fmt.Errorf("%w: cannot add %q", errs.ErrDictionaryFull, symbol)
	}

	return d.insertWithID(symbol, uint16(d.nextID), 1), nil
}

// insertWithID records symbol at id with the given starting frequency,
// advancing nextID if id would otherwise be reused. nextID is tracked as a
// uint32 specifically so that inserting id wire.MaxDictionaryID (65535)
// advances it to 65536 instead of wrapping to 0, which would otherwise let a
// later Insert silently hand out the reserved "absent" id.
func (d *Dictionary) insertWithID(symbol string, id uint16, frequency uint16) uint16 {
	idx := len(d.entries)
	d.entries = append(d.entries, Entry{ID: id, Symbol: symbol, Frequency: frequency})
	d.byID[id] = idx
	d.bySym[symbol] = idx

	if uint32(id) >= d.nextID {
		d.nextID = uint32(id) + 1
	}

	return id
}

// Increment bumps the frequency of an existing symbol and returns its id, or
// 0 if the symbol has not been inserted yet.
func (d *Dictionary) Increment(symbol string) uint16 {
	idx, ok := d.bySym[symbol]
	if !ok {
		return 0
	}

	d.entries[idx].Frequency++

	return d.entries[idx].ID
}

// Len returns the number of entries currently held.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Serialize writes the dictionary to w in insertion order: each entry as
// `id:u16-LE || symbol-bytes || 0x00`, followed by two stray zero bytes and
// the ENDOFDICTIONARY sentinel (itself zero-terminated). The two stray zero
// bytes reproduce the reference encoder's dump_dictionary layout exactly;
// they are not a separate entry and the reader discards them unconditionally.
func (d *Dictionary) Serialize(w io.Writer) error {
	engine := endian.GetLittleEndianEngine()

	for _, e := range d.entries {
		head := engine.AppendUint16(nil, e.ID)
		if _, err := w.Write(head); err != nil {
			return fmt.Errorf("dict: write entry id: %w", err)
		}
		if _, err := io.WriteString(w, e.Symbol); err != nil {
			return fmt.Errorf("dict: write symbol: %w", err)
		}
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("dict: write symbol terminator: %w", err)
		}
	}

	if _, err := w.Write([]byte{0, 0}); err != nil {
		return fmt.Errorf("dict: write sentinel padding: %w", err)
	}

	sentinel := append([]byte(wire.EndOfDictionary), 0)
	if _, err := w.Write(sentinel); err != nil {
		return fmt.Errorf("dict: write sentinel: %w", err)
	}

	return nil
}

// Deserialize reads a dictionary from br until the ENDOFDICTIONARY sentinel.
// Each entry is read as a u16 id followed by a zero-terminated string; the
// two stray padding bytes written by Serialize are read as the id that
// precedes the sentinel string and discarded once that string matches,
// mirroring the reference reader.
//
// br must be the same *bufio.Reader the caller goes on to use for the
// record stream that follows the dictionary: bufio.Reader reads ahead in
// chunks, so wrapping the underlying io.Reader a second time after
// Deserialize returns would strand any already-buffered record bytes in the
// discarded first reader.
func Deserialize(br *bufio.Reader) (*Dictionary, error) {
	d := New()
	engine := endian.GetLittleEndianEngine()

	idBuf := make([]byte, 2)
	for {
		if _, err := io.ReadFull(br, idBuf); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, fmt.Errorf("%w: dictionary missing sentinel", errs.ErrTruncatedInput)
			}

			return nil, fmt.Errorf("dict: read entry id: %w", err)
		}
		id := engine.Uint16(idBuf)

		symbol, err := br.ReadString(0)
		if err != nil {
			return nil, fmt.Errorf("%w: dictionary missing sentinel", errs.ErrTruncatedInput)
		}
		symbol = symbol[:len(symbol)-1] // drop the trailing 0x00

		if symbol == wire.EndOfDictionary {
			break
		}

		d.insertWithID(symbol, id, 1)
	}

	return d, nil
}

// Checksum computes an xxHash64 over the dictionary's serialized symbol
// table. It is diagnostic only: never part of the wire format, never
// recomputed by Deserialize, and exercised by stream's debug-mode logging.
func (d *Dictionary) Checksum() (uint64, error) {
	var buf bytes.Buffer
	if err := d.Serialize(&buf); err != nil {
		return 0, err
	}

	return hash.ID(buf.String()), nil
}
