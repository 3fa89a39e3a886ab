// Package actions layers push, pull, and jump on top of board primitives.
// Every action validates its preconditions read-only against the board, then
// applies the move; failures are tagged results, never partial state.
package actions

import (
	"fmt"

	"gridcraft.ai/internal/protocol"
	"gridcraft.ai/internal/sim/board"
	"gridcraft.ai/internal/sim/entity"
	"gridcraft.ai/internal/sim/tuning"
)

// Rules binds the tunable movement parameters for a world.
type Rules struct {
	// DefaultStrength applies to actors without an Actor component.
	DefaultStrength int
}

func NewRules(t tuning.Tuning) Rules {
	return Rules{DefaultStrength: t.DefaultStrength}
}

func (r Rules) strengthOf(actor *entity.Entity) int {
	if actor.Actor != nil {
		return actor.Actor.Strength
	}
	return r.DefaultStrength
}

// Push shoves obj one cell along dir and steps the actor into the vacated
// cell. The actor must be cardinally adjacent to obj on the near side, i.e.
// obj sits at actor+dir.
func (r Rules) Push(b *board.Board, actor, obj *entity.Entity, dir entity.Direction) protocol.Result {
	if b == nil || actor == nil || obj == nil {
		return protocol.Deny(protocol.ErrBadRequest, "missing board, actor, or object")
	}
	apos, placed := actor.At()
	if !placed || b.Entity(actor.ID) != actor {
		return protocol.Deny(protocol.ErrBadRequest, "actor is not on the board")
	}
	opos, placed := obj.At()
	if !placed || b.Entity(obj.ID) != obj {
		return protocol.Deny(protocol.ErrBadRequest, "object is not on the board")
	}
	if apos.Add(dir) != opos {
		return protocol.Deny(protocol.ErrNotAdjacent,
			fmt.Sprintf("%s is not adjacent to the %s of %s", obj.Name, dir, actor.Name))
	}
	if obj.Object == nil || !obj.Object.Movable {
		return protocol.Deny(protocol.ErrNotMovable, fmt.Sprintf("%s cannot be moved", obj.Name))
	}
	if obj.Object.Weight > r.strengthOf(actor) {
		return protocol.Deny(protocol.ErrTooHeavy, fmt.Sprintf("%s is too heavy", obj.Name))
	}
	dest := opos.Add(dir)
	if !b.InBounds(dest) {
		return protocol.Deny(protocol.ErrOutOfBounds, "nowhere to push to")
	}
	if !b.CanMoveTo(dest) {
		return protocol.Deny(protocol.ErrBlocked, "the way is blocked")
	}
	if !b.MoveEntity(obj, dest) || !b.MoveEntity(actor, opos) {
		return protocol.Deny(protocol.ErrInternal, "push failed after validation")
	}
	return protocol.Ok(fmt.Sprintf("%s pushed %s %s", actor.Name, obj.Name, dir))
}

// Pull has the actor retreat one cell along dir while obj slides into the
// actor's vacated cell. Convention: dir is the retreat direction, so obj must
// sit directly behind the actor at actor-dir.
func (r Rules) Pull(b *board.Board, actor, obj *entity.Entity, dir entity.Direction) protocol.Result {
	if b == nil || actor == nil || obj == nil {
		return protocol.Deny(protocol.ErrBadRequest, "missing board, actor, or object")
	}
	apos, placed := actor.At()
	if !placed || b.Entity(actor.ID) != actor {
		return protocol.Deny(protocol.ErrBadRequest, "actor is not on the board")
	}
	opos, placed := obj.At()
	if !placed || b.Entity(obj.ID) != obj {
		return protocol.Deny(protocol.ErrBadRequest, "object is not on the board")
	}
	retreat := apos.Add(dir)
	if !b.InBounds(retreat) {
		return protocol.Deny(protocol.ErrOutOfBounds, "no room to step back")
	}
	if apos.Add(dir.Opposite()) != opos {
		return protocol.Deny(protocol.ErrNotAdjacent,
			fmt.Sprintf("%s is not behind %s", obj.Name, actor.Name))
	}
	if !b.CanMoveTo(retreat) {
		return protocol.Deny(protocol.ErrBlocked, "the way back is blocked")
	}
	if obj.Object == nil || !obj.Object.Movable {
		return protocol.Deny(protocol.ErrNotMovable, fmt.Sprintf("%s cannot be moved", obj.Name))
	}
	if obj.Object.Weight > r.strengthOf(actor) {
		return protocol.Deny(protocol.ErrTooHeavy, fmt.Sprintf("%s is too heavy", obj.Name))
	}
	if !b.MoveEntity(actor, retreat) || !b.MoveEntity(obj, apos) {
		return protocol.Deny(protocol.ErrInternal, "pull failed after validation")
	}
	return protocol.Ok(fmt.Sprintf("%s pulled %s %s", actor.Name, obj.Name, dir))
}

// Jump hops the actor over a jumpable object onto the landing cell. The
// target must be exactly two cells away along one cardinal axis; the single
// middle cell must hold a jumpable object; the landing cell must be free.
func (r Rules) Jump(b *board.Board, actor *entity.Entity, target entity.Position) protocol.Result {
	if b == nil || actor == nil {
		return protocol.Deny(protocol.ErrBadRequest, "missing board or actor")
	}
	apos, placed := actor.At()
	if !placed || b.Entity(actor.ID) != actor {
		return protocol.Deny(protocol.ErrBadRequest, "actor is not on the board")
	}
	dx := target.X - apos.X
	dy := target.Y - apos.Y
	cardinalTwo := (dx == 0 && (dy == 2 || dy == -2)) || (dy == 0 && (dx == 2 || dx == -2))
	if !cardinalTwo {
		return protocol.Deny(protocol.ErrInvalidTarget,
			"jump must be exactly two cells along one cardinal direction")
	}
	middle := apos.Shift(dx/2, dy/2)
	over := b.ObjectAt(middle)
	if over == nil {
		return protocol.Deny(protocol.ErrInvalidTarget, "nothing to jump over")
	}
	if !over.Object.Jumpable {
		return protocol.Deny(protocol.ErrNotJumpable, fmt.Sprintf("%s cannot be jumped over", over.Name))
	}
	if !b.InBounds(target) {
		return protocol.Deny(protocol.ErrOutOfBounds, "landing cell is off the board")
	}
	if !b.CanMoveTo(target) {
		return protocol.Deny(protocol.ErrBlocked, "landing cell is blocked")
	}
	if !b.MoveEntity(actor, target) {
		return protocol.Deny(protocol.ErrInternal, "jump failed after validation")
	}
	return protocol.Ok(fmt.Sprintf("%s jumped over %s", actor.Name, over.Name))
}

// JumpDir is Jump with the landing derived from a cardinal direction.
func (r Rules) JumpDir(b *board.Board, actor *entity.Entity, dir entity.Direction) protocol.Result {
	if b == nil || actor == nil {
		return protocol.Deny(protocol.ErrBadRequest, "missing board or actor")
	}
	apos, placed := actor.At()
	if !placed {
		return protocol.Deny(protocol.ErrBadRequest, "actor is not on the board")
	}
	dx, dy := dir.Delta()
	return r.Jump(b, actor, apos.Shift(2*dx, 2*dy))
}
