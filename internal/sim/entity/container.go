package entity

import (
	"fmt"

	"gridcraft.ai/internal/protocol"
)

// AddItem moves a game object into this container. The item's board position
// pointer is cleared: it is owned by the container from here on. The caller
// must detach the item from the board first (Board.RemoveEntity), the
// container does not know about boards.
func (e *Entity) AddItem(item *Entity) protocol.Result {
	if e == nil || e.Storage == nil {
		return protocol.Deny(protocol.ErrBadRequest, "not a container")
	}
	if item == nil || item.Object == nil {
		return protocol.Deny(protocol.ErrBadRequest, "only game objects can be stored")
	}
	if !e.Storage.Open {
		return protocol.Deny(protocol.ErrClosed, fmt.Sprintf("%s is closed", e.Name))
	}
	if len(e.Storage.Contents) >= e.Storage.Capacity {
		return protocol.Deny(protocol.ErrFull, fmt.Sprintf("%s is full", e.Name))
	}
	for _, held := range e.Storage.Contents {
		if held.ID == item.ID {
			return protocol.Deny(protocol.ErrBadRequest, fmt.Sprintf("%s is already inside", item.Name))
		}
	}
	item.Pos = nil
	e.Storage.Contents = append(e.Storage.Contents, item)
	return protocol.Ok(fmt.Sprintf("%s stored in %s", item.Name, e.Name))
}

// RemoveItem takes an item out by id and returns it. The item comes back
// unplaced; re-placement is the caller's decision (Board.AddEntity with an
// explicit drop position).
func (e *Entity) RemoveItem(id string) (*Entity, protocol.Result) {
	if e == nil || e.Storage == nil {
		return nil, protocol.Deny(protocol.ErrBadRequest, "not a container")
	}
	if !e.Storage.Open {
		return nil, protocol.Deny(protocol.ErrClosed, fmt.Sprintf("%s is closed", e.Name))
	}
	for i, held := range e.Storage.Contents {
		if held.ID == id {
			e.Storage.Contents = append(e.Storage.Contents[:i], e.Storage.Contents[i+1:]...)
			return held, protocol.Ok(fmt.Sprintf("%s taken from %s", held.Name, e.Name))
		}
	}
	return nil, protocol.Deny(protocol.ErrNotFound, fmt.Sprintf("no such item in %s", e.Name))
}

// Contains reports whether the container currently holds the given id.
func (e *Entity) Contains(id string) bool {
	if e == nil || e.Storage == nil {
		return false
	}
	for _, held := range e.Storage.Contents {
		if held.ID == id {
			return true
		}
	}
	return false
}

// CanUseWith reports whether this object is declared compatible with the
// other entity id.
func (e *Entity) CanUseWith(otherID string) bool {
	return e != nil && e.Object != nil && e.Object.UsableWith[otherID]
}

// UseWith performs the capability check and reports the outcome. No state
// changes; effects of a use are the orchestrator's business.
func (e *Entity) UseWith(otherID string) protocol.Result {
	if e == nil || e.Object == nil {
		return protocol.Deny(protocol.ErrBadRequest, "not a usable object")
	}
	if !e.CanUseWith(otherID) {
		return protocol.Deny(protocol.ErrInvalidTarget, fmt.Sprintf("%s cannot be used with that", e.Name))
	}
	return protocol.Ok(fmt.Sprintf("%s used", e.Name))
}
