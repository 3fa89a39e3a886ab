package entity

import "github.com/google/uuid"

type Kind string

const (
	KindEntity    Kind = "ENTITY"
	KindObject    Kind = "OBJECT"
	KindContainer Kind = "CONTAINER"
	KindPerson    Kind = "PERSON"
)

// Entity is anything placeable in the world. Capabilities are optional
// components: a nil component means the entity does not have that capability.
// Components are set at construction; occupancy logic only ever looks at
// component presence, never at Kind.
type Entity struct {
	ID          string
	Kind        Kind
	Name        string
	Description string

	// Pos mirrors board placement. The board is authoritative once an entity
	// is placed; only board operations and container ownership may touch it.
	// Nil means unplaced or owned by a container, never both.
	Pos *Position

	// Props is an open bag for domain-specific attributes that the core does
	// not interpret.
	Props map[string]any

	Object  *ObjectInfo
	Storage *StorageInfo
	Actor   *ActorInfo
}

// ObjectInfo marks an entity as a blocking game object and carries its
// manipulation attributes.
type ObjectInfo struct {
	Movable    bool
	Jumpable   bool
	Weight     int
	UsableWith map[string]bool
}

// StorageInfo makes an entity a container of game objects. Contents keep
// insertion order and never exceed Capacity.
type StorageInfo struct {
	Contents []*Entity
	Capacity int
	Open     bool
}

// ActorInfo carries a person's manipulation strength and carried inventory.
// Pack is a container-kind entity that is never on the board while carried.
type ActorInfo struct {
	Strength int
	Pack     *Entity
}

func NewID() string { return uuid.NewString() }

func New(name string) *Entity {
	return &Entity{
		ID:    NewID(),
		Kind:  KindEntity,
		Name:  name,
		Props: map[string]any{},
	}
}

func NewObject(name string, movable, jumpable bool, weight int) *Entity {
	e := New(name)
	e.Kind = KindObject
	e.Object = &ObjectInfo{
		Movable:    movable,
		Jumpable:   jumpable,
		Weight:     weight,
		UsableWith: map[string]bool{},
	}
	return e
}

func NewContainer(name string, capacity int) *Entity {
	e := NewObject(name, false, false, 0)
	e.Kind = KindContainer
	e.Storage = &StorageInfo{Capacity: capacity, Open: true}
	return e
}

func NewPerson(name string, strength int) *Entity {
	e := New(name)
	e.Kind = KindPerson
	pack := NewContainer(name+"'s pack", 16)
	e.Actor = &ActorInfo{Strength: strength, Pack: pack}
	return e
}

// Blocks reports whether this entity makes its cell non-traversable.
// Game objects (containers included) block regardless of movability.
func (e *Entity) Blocks() bool {
	return e != nil && e.Object != nil
}

// At returns the board position and whether the entity is placed.
func (e *Entity) At() (Position, bool) {
	if e == nil || e.Pos == nil {
		return Position{}, false
	}
	return *e.Pos, true
}
