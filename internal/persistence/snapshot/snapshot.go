// Package snapshot is the boundary document codec: a versioned JSON shape
// carrying board dimensions plus every entity the core can represent,
// lossless in both directions. Files are zstd-compressed JSON.
package snapshot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"

	"gridcraft.ai/internal/sim/board"
	"gridcraft.ai/internal/sim/entity"
)

const Version = 1

type Header struct {
	Version int `json:"version"`
}

type WorldDocV1 struct {
	Header   Header     `json:"header"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Entities []EntityV1 `json:"entities"`
}

type PositionV1 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type EntityV1 struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Name        string      `json:"name"`
	Position    *PositionV1 `json:"position,omitempty"`
	Description string      `json:"description,omitempty"`

	IsMovable  *bool    `json:"is_movable,omitempty"`
	IsJumpable *bool    `json:"is_jumpable,omitempty"`
	Weight     int      `json:"weight,omitempty"`
	UsableWith []string `json:"usable_with,omitempty"`

	Contents []EntityV1 `json:"contents,omitempty"`
	Capacity int        `json:"capacity,omitempty"`
	IsOpen   *bool      `json:"is_open,omitempty"`

	Strength  int       `json:"strength,omitempty"`
	Inventory *EntityV1 `json:"inventory,omitempty"`

	Props map[string]any `json:"props,omitempty"`
}

// Export captures a board as a document. Top-level entries are the placed
// entities in deterministic (id) order; contained objects appear nested
// under their container.
func Export(b *board.Board) WorldDocV1 {
	doc := WorldDocV1{
		Header: Header{Version: Version},
		Width:  b.Width(),
		Height: b.Height(),
	}
	all := b.AllEntities()
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	for _, e := range all {
		doc.Entities = append(doc.Entities, encodeEntity(e))
	}
	return doc
}

func encodeEntity(e *entity.Entity) EntityV1 {
	v := EntityV1{
		ID:          e.ID,
		Type:        string(e.Kind),
		Name:        e.Name,
		Description: e.Description,
	}
	if e.Pos != nil {
		v.Position = &PositionV1{X: e.Pos.X, Y: e.Pos.Y}
	}
	if len(e.Props) > 0 {
		v.Props = e.Props
	}
	if e.Object != nil {
		v.IsMovable = boolPtr(e.Object.Movable)
		v.IsJumpable = boolPtr(e.Object.Jumpable)
		v.Weight = e.Object.Weight
		if len(e.Object.UsableWith) > 0 {
			for id := range e.Object.UsableWith {
				v.UsableWith = append(v.UsableWith, id)
			}
			sort.Strings(v.UsableWith)
		}
	}
	if e.Storage != nil {
		v.Capacity = e.Storage.Capacity
		v.IsOpen = boolPtr(e.Storage.Open)
		for _, held := range e.Storage.Contents {
			v.Contents = append(v.Contents, encodeEntity(held))
		}
	}
	if e.Actor != nil {
		v.Strength = e.Actor.Strength
		if e.Actor.Pack != nil {
			pack := encodeEntity(e.Actor.Pack)
			v.Inventory = &pack
		}
	}
	return v
}

// Import rebuilds a board from a document, seeding placement through the
// ordinary board operations. Every top-level entry must carry a position;
// contained objects are restored unplaced inside their container.
func Import(doc WorldDocV1) (*board.Board, error) {
	if doc.Header.Version != Version {
		return nil, fmt.Errorf("unsupported document version %d", doc.Header.Version)
	}
	b := board.New(doc.Width, doc.Height)
	if b == nil {
		return nil, fmt.Errorf("bad board dimensions %dx%d", doc.Width, doc.Height)
	}
	for _, v := range doc.Entities {
		e, err := decodeEntity(v)
		if err != nil {
			return nil, err
		}
		if v.Position == nil {
			return nil, fmt.Errorf("entity %s (%s): top-level entries must have a position", v.ID, v.Name)
		}
		if !b.AddEntity(e, entity.Position{X: v.Position.X, Y: v.Position.Y}) {
			return nil, fmt.Errorf("entity %s (%s): cannot place at (%d,%d)", v.ID, v.Name, v.Position.X, v.Position.Y)
		}
	}
	return b, nil
}

func decodeEntity(v EntityV1) (*entity.Entity, error) {
	e := &entity.Entity{
		ID:          v.ID,
		Kind:        entity.Kind(v.Type),
		Name:        v.Name,
		Description: v.Description,
		Props:       v.Props,
	}
	if e.ID == "" {
		e.ID = entity.NewID()
	}
	if e.Props == nil {
		e.Props = map[string]any{}
	}
	switch e.Kind {
	case entity.KindEntity:
	case entity.KindObject, entity.KindContainer:
		e.Object = &entity.ObjectInfo{
			Movable:    boolVal(v.IsMovable),
			Jumpable:   boolVal(v.IsJumpable),
			Weight:     v.Weight,
			UsableWith: map[string]bool{},
		}
		for _, id := range v.UsableWith {
			e.Object.UsableWith[id] = true
		}
		if e.Kind == entity.KindContainer {
			if len(v.Contents) > v.Capacity {
				return nil, fmt.Errorf("container %s: %d contents exceed capacity %d", v.Name, len(v.Contents), v.Capacity)
			}
			e.Storage = &entity.StorageInfo{Capacity: v.Capacity, Open: boolVal(v.IsOpen)}
			for _, held := range v.Contents {
				item, err := decodeEntity(held)
				if err != nil {
					return nil, err
				}
				if item.Object == nil {
					return nil, fmt.Errorf("container %s: %s is not a game object", v.Name, held.Name)
				}
				item.Pos = nil
				e.Storage.Contents = append(e.Storage.Contents, item)
			}
		}
	case entity.KindPerson:
		e.Actor = &entity.ActorInfo{Strength: v.Strength}
		if v.Inventory != nil {
			pack, err := decodeEntity(*v.Inventory)
			if err != nil {
				return nil, err
			}
			pack.Pos = nil
			e.Actor.Pack = pack
		}
	default:
		return nil, fmt.Errorf("entity %s: unknown type %q", v.Name, v.Type)
	}
	return e, nil
}

func boolPtr(v bool) *bool { return &v }

func boolVal(p *bool) bool { return p != nil && *p }

// Write stores a document as zstd-compressed JSON.
func Write(path string, doc WorldDocV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	if err := json.NewEncoder(bw).Encode(&doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

func Read(path string) (WorldDocV1, error) {
	var doc WorldDocV1
	f, err := os.Open(path)
	if err != nil {
		return doc, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return doc, err
	}
	defer dec.Close()

	if err := json.NewDecoder(bufio.NewReaderSize(dec, 64*1024)).Decode(&doc); err != nil {
		return doc, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}
