package board

import (
	"strings"

	"gridcraft.ai/internal/sim/entity"
)

type Position = entity.Position

// Board is the spatial index for a fixed width x height grid. It is the sole
// owner of placement state: Entity.Pos is a mirror kept in sync here and must
// not be written anywhere else once an entity is placed.
//
// Board is single-threaded by design; callers serialize mutations.
type Board struct {
	width  int
	height int

	// buckets keeps per-cell occupants in insertion order: at most one
	// blocking object plus arbitrarily many non-blocking entities.
	buckets map[Position][]*entity.Entity
	byID    map[string]*entity.Entity
}

func New(width, height int) *Board {
	if width <= 0 || height <= 0 {
		return nil
	}
	return &Board{
		width:   width,
		height:  height,
		buckets: make(map[Position][]*entity.Entity),
		byID:    make(map[string]*entity.Entity),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.width && p.Y >= 0 && p.Y < b.height
}

// CanMoveTo is the single occupancy rule: a cell is enterable iff it is on
// the board and no blocking occupant is present.
func (b *Board) CanMoveTo(p Position) bool {
	if !b.InBounds(p) {
		return false
	}
	for _, occ := range b.buckets[p] {
		if occ.Blocks() {
			return false
		}
	}
	return true
}

// AddEntity places e at p. Fails on invalid position, nil entity, or an id
// the board already tracks (an entity lives in at most one bucket).
// Any position previously cached on e is overwritten.
func (b *Board) AddEntity(e *entity.Entity, p Position) bool {
	if e == nil || !b.InBounds(p) {
		return false
	}
	if _, dup := b.byID[e.ID]; dup {
		return false
	}
	pos := p
	e.Pos = &pos
	b.buckets[p] = append(b.buckets[p], e)
	b.byID[e.ID] = e
	return true
}

// RemoveEntity detaches e from the board and clears its position mirror.
func (b *Board) RemoveEntity(e *entity.Entity) bool {
	if e == nil {
		return false
	}
	tracked, ok := b.byID[e.ID]
	if !ok || tracked != e {
		return false
	}
	if e.Pos != nil {
		b.detach(e, *e.Pos)
	}
	e.Pos = nil
	delete(b.byID, e.ID)
	return true
}

// MoveEntity relocates e to target. Calling it with e's current position is
// a no-op success. Preconditions are validated up front; there is no
// mid-mutation failure path left to roll back.
func (b *Board) MoveEntity(e *entity.Entity, target Position) bool {
	if e == nil || !b.InBounds(target) {
		return false
	}
	tracked, ok := b.byID[e.ID]
	if !ok || tracked != e || e.Pos == nil {
		return false
	}
	if *e.Pos == target {
		return true
	}
	if !b.CanMoveTo(target) {
		return false
	}
	b.detach(e, *e.Pos)
	pos := target
	e.Pos = &pos
	b.buckets[target] = append(b.buckets[target], e)
	return true
}

func (b *Board) detach(e *entity.Entity, at Position) {
	bucket := b.buckets[at]
	for i, occ := range bucket {
		if occ == e {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(b.buckets, at)
	} else {
		b.buckets[at] = bucket
	}
}

func (b *Board) Entity(id string) *entity.Entity {
	return b.byID[id]
}

// EntitiesAt returns the occupants of p in insertion order. Empty for
// invalid or vacant cells.
func (b *Board) EntitiesAt(p Position) []*entity.Entity {
	bucket := b.buckets[p]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]*entity.Entity, len(bucket))
	copy(out, bucket)
	return out
}

// ObjectAt returns the first blocking occupant of p, or nil.
func (b *Board) ObjectAt(p Position) *entity.Entity {
	for _, occ := range b.buckets[p] {
		if occ.Blocks() {
			return occ
		}
	}
	return nil
}

func (b *Board) AllEntities() []*entity.Entity {
	out := make([]*entity.Entity, 0, len(b.byID))
	for _, e := range b.byID {
		out = append(out, e)
	}
	return out
}

// FindByName matches by case-insensitive substring.
func (b *Board) FindByName(substr string) []*entity.Entity {
	needle := strings.ToLower(substr)
	var out []*entity.Entity
	for _, e := range b.byID {
		if strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, e)
		}
	}
	return out
}

func (b *Board) FindByKind(kind entity.Kind) []*entity.Entity {
	var out []*entity.Entity
	for _, e := range b.byID {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
