// Package encoding provides a compact wire form for board occupancy. Cells
// are flattened row-major into codes and run-length encoded, which keeps the
// string short on the mostly-empty boards tools print and diff.
package encoding

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"gridcraft.ai/internal/sim/board"
)

// Occupancy codes, one per cell.
const (
	CellEmpty    uint16 = 0 // enterable, nothing blocking
	CellSolid    uint16 = 1 // blocking, not jumpable
	CellJumpable uint16 = 2 // blocking, jumpable
	CellOccupied uint16 = 3 // non-blocking occupant present
)

// OccupancyGrid flattens the board row-major into occupancy codes.
func OccupancyGrid(b *board.Board) []uint16 {
	w := b.Width()
	out := make([]uint16, w*b.Height())
	for _, e := range b.AllEntities() {
		p, ok := e.At()
		if !ok {
			continue
		}
		i := p.Y*w + p.X
		switch {
		case e.Blocks() && e.Object.Jumpable:
			out[i] = CellJumpable
		case e.Blocks():
			out[i] = CellSolid
		case out[i] == CellEmpty:
			out[i] = CellOccupied
		}
	}
	return out
}

// MaxDecodedCells bounds DecodeRLE output. Boards are tens of cells per
// side, so anything past this is a malformed or hostile input, not a board.
const MaxDecodedCells = 1 << 16

// EncodeRLE encodes cell codes as base64(varint pairs). The pairs are
// (code, run_len) repeated.
func EncodeRLE(codes []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	i := 0
	for i < len(codes) {
		c := codes[i]
		run := 1
		for j := i + 1; j < len(codes) && codes[j] == c && run < 1<<31; j++ {
			run++
		}

		n := binary.PutUvarint(tmp[:], uint64(c))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])

		i += run
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func DecodeRLE(b64 string) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []uint16
	for i := 0; i < len(raw); {
		c, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if c > 0xFFFF {
			return nil, fmt.Errorf("cell code too large: %d", c)
		}
		if run > MaxDecodedCells || len(out)+int(run) > MaxDecodedCells {
			return nil, fmt.Errorf("decoded length exceeds %d cells", MaxDecodedCells)
		}
		for k := 0; k < int(run); k++ {
			out = append(out, uint16(c))
		}
	}
	return out, nil
}
