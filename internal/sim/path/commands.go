package path

import (
	"fmt"

	"gridcraft.ai/internal/protocol"
	"gridcraft.ai/internal/sim/entity"
)

type Op string

const (
	OpMove Op = "MOVE"
	OpJump Op = "JUMP"
)

// Command is one movement instruction derived from a path.
type Command struct {
	Op   Op
	From Position
	To   Position
	Dir  entity.Direction
}

func (c Command) Msg() protocol.CommandMsg {
	return protocol.CommandMsg{
		Type: string(c.Op),
		From: [2]int{c.From.X, c.From.Y},
		To:   [2]int{c.To.X, c.To.Y},
		Dir:  c.Dir.String(),
	}
}

// DeriveCommands turns a path into orchestrator commands: Manhattan-1 pairs
// become MOVE, cardinal Manhattan-2 pairs become JUMP targeting the landing
// cell. Any other delta cannot come out of the neighbor model and is an
// internal-consistency error, not something to paper over.
func DeriveCommands(steps []Position) ([]Command, error) {
	if len(steps) < 2 {
		return nil, nil
	}
	out := make([]Command, 0, len(steps)-1)
	for i := 1; i < len(steps); i++ {
		from, to := steps[i-1], steps[i]
		if dir, ok := entity.DirectionBetween(from, to); ok {
			out = append(out, Command{Op: OpMove, From: from, To: to, Dir: dir})
			continue
		}
		dx := to.X - from.X
		dy := to.Y - from.Y
		if (dx == 0 && (dy == 2 || dy == -2)) || (dy == 0 && (dx == 2 || dx == -2)) {
			dir, _ := entity.DirectionBetween(from, from.Shift(sign(dx), sign(dy)))
			out = append(out, Command{Op: OpJump, From: from, To: to, Dir: dir})
			continue
		}
		return nil, fmt.Errorf("inconsistent path: %v -> %v is neither a step nor a jump", from, to)
	}
	return out, nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
