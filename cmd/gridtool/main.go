package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gridcraft.ai/internal/persistence/archive"
	"gridcraft.ai/internal/persistence/indexdb"
	"gridcraft.ai/internal/persistence/log"
	"gridcraft.ai/internal/persistence/snapshot"
	"gridcraft.ai/internal/protocol"
	"gridcraft.ai/internal/sim/actions"
	"gridcraft.ai/internal/sim/board"
	"gridcraft.ai/internal/sim/catalogs"
	"gridcraft.ai/internal/sim/encoding"
	"gridcraft.ai/internal/sim/entity"
	"gridcraft.ai/internal/sim/path"
	"gridcraft.ai/internal/sim/tuning"
)

func main() {
	var (
		docPath    = flag.String("doc", "", "path to a .world.zst document")
		newArg     = flag.String("new", "", "create a fresh board instead, as WxH")
		catalogArg = flag.String("catalog", "configs/entities.yaml", "entity template catalog")
		placeArg   = flag.String("place", "", "templates to place on a fresh board, as id@x,y;id@x,y")
		fromArg    = flag.String("from", "", "path start cell as x,y")
		toArg      = flag.String("to", "", "path end cell as x,y")
		actorID    = flag.String("actor", "", "entity id to walk along the computed path")
		apply      = flag.Bool("apply", false, "apply the derived commands to the board")
		tuningPath = flag.String("tuning", "", "tuning yaml (defaults to built-in values)")
		outPath    = flag.String("out", "", "write the resulting document here")
		archiveDir = flag.String("archive", "", "archive the written document under this directory")
		dbPath     = flag.String("db", "", "sqlite save index to record the result in")
		saveName   = flag.String("save_name", "", "name for the save index entry")
		logDir     = flag.String("logdir", "", "directory for the action log")
	)
	flag.Parse()

	var b *board.Board
	switch {
	case *docPath != "":
		doc, err := snapshot.Read(*docPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read document:", err)
			os.Exit(1)
		}
		b, err = snapshot.Import(doc)
		if err != nil {
			fmt.Fprintln(os.Stderr, "import document:", err)
			os.Exit(1)
		}
	case *newArg != "":
		var err error
		b, err = newBoard(*newArg, *catalogArg, *placeArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "new board:", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "missing -doc or -new")
		os.Exit(2)
	}
	fmt.Printf("world %dx%d entities=%d occupancy=%s\n",
		b.Width(), b.Height(), len(b.AllEntities()),
		encoding.EncodeRLE(encoding.OccupancyGrid(b)))

	tun := tuning.Default()
	if *tuningPath != "" {
		loaded, err := tuning.Load(*tuningPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "load tuning:", err)
			os.Exit(1)
		}
		tun = loaded
	}

	if *fromArg != "" || *toArg != "" {
		start, err := parseCell(*fromArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad -from:", err)
			os.Exit(2)
		}
		end, err := parseCell(*toArg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "bad -to:", err)
			os.Exit(2)
		}

		route := path.FindPathCosts(b, start, end, path.CostsFrom(tun))
		if len(route) == 0 {
			fmt.Println("no path")
			os.Exit(0)
		}
		cmds, err := path.DeriveCommands(route)
		if err != nil {
			fmt.Fprintln(os.Stderr, "derive commands:", err)
			os.Exit(1)
		}
		for _, c := range cmds {
			raw, _ := json.Marshal(c.Msg())
			fmt.Println(string(raw))
		}

		if *apply {
			if err := applyCommands(b, tun, *actorID, cmds, *logDir); err != nil {
				fmt.Fprintln(os.Stderr, "apply:", err)
				os.Exit(1)
			}
		}
	}

	if *outPath != "" {
		out := snapshot.Export(b)
		if err := snapshot.Write(*outPath, out); err != nil {
			fmt.Fprintln(os.Stderr, "write document:", err)
			os.Exit(1)
		}
		if *archiveDir != "" {
			name := *saveName
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(*outPath), ".world.zst")
			}
			dst, err := archive.ArchiveWorldDoc(*archiveDir, name, *outPath, out)
			if err != nil {
				fmt.Fprintln(os.Stderr, "archive document:", err)
				os.Exit(1)
			}
			fmt.Println("archived", dst)
		}
	}

	if *dbPath != "" {
		store, err := indexdb.Open(*dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open save index:", err)
			os.Exit(1)
		}
		defer store.Close()
		name := *saveName
		if name == "" {
			name = *docPath
		}
		if name == "" {
			name = "world"
		}
		id, err := store.SaveWorld(name, snapshot.Export(b))
		if err != nil {
			fmt.Fprintln(os.Stderr, "save world:", err)
			os.Exit(1)
		}
		fmt.Println("saved", id)
	}
}

func applyCommands(b *board.Board, tun tuning.Tuning, actorID string, cmds []path.Command, logDir string) error {
	if actorID == "" {
		return fmt.Errorf("missing -actor")
	}
	actor := b.Entity(actorID)
	if actor == nil {
		return fmt.Errorf("actor %s not found", actorID)
	}

	var logger *log.ActionLogger
	if logDir != "" {
		var err error
		logger, err = log.NewActionLogger(logDir)
		if err != nil {
			return err
		}
		defer logger.Close()
	}

	rules := actions.NewRules(tun)
	for i, c := range cmds {
		var ok bool
		var code, msg string
		switch c.Op {
		case path.OpMove:
			ok = b.MoveEntity(actor, c.To)
			if !ok {
				code, msg = moveDenialCode(b, actor, c.To), "move rejected"
			}
		case path.OpJump:
			res := rules.Jump(b, actor, c.To)
			ok, code, msg = res.OK, res.Code, res.Message
		}
		if logger != nil {
			from, to := [2]int{c.From.X, c.From.Y}, [2]int{c.To.X, c.To.Y}
			_ = logger.Write(log.ActionEntry{
				Step:    uint64(i),
				Actor:   actorID,
				Action:  string(c.Op),
				OK:      ok,
				Code:    code,
				Message: msg,
				From:    &from,
				To:      &to,
			})
		}
		if !ok {
			return fmt.Errorf("command %d (%s to %d,%d) failed: %s", i, c.Op, c.To.X, c.To.Y, msg)
		}
	}
	return nil
}

// moveDenialCode classifies a failed plain move the way the actions package
// tags its denials.
func moveDenialCode(b *board.Board, actor *entity.Entity, to entity.Position) string {
	switch {
	case !b.InBounds(to):
		return protocol.ErrOutOfBounds
	case actor.Pos == nil:
		return protocol.ErrBadRequest
	default:
		return protocol.ErrBlocked
	}
}

// newBoard builds a fresh board from a WxH spec and optional template
// placements drawn from the catalog.
func newBoard(dims, catalogPath, placements string) (*board.Board, error) {
	parts := strings.Split(dims, "x")
	if len(parts) != 2 {
		return nil, fmt.Errorf("want WxH got %q", dims)
	}
	w, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, err
	}
	b := board.New(w, h)
	if b == nil {
		return nil, fmt.Errorf("bad dimensions %dx%d", w, h)
	}
	if placements == "" {
		return b, nil
	}

	cat, err := catalogs.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	for _, spec := range strings.Split(placements, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		id, cell, ok := strings.Cut(spec, "@")
		if !ok {
			return nil, fmt.Errorf("want id@x,y got %q", spec)
		}
		e, err := cat.Instantiate(strings.TrimSpace(id))
		if err != nil {
			return nil, err
		}
		p, err := parseCell(cell)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec, err)
		}
		if !b.AddEntity(e, p) {
			return nil, fmt.Errorf("cannot place %s at %d,%d", id, p.X, p.Y)
		}
	}
	return b, nil
}

func parseCell(s string) (entity.Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return entity.Position{}, fmt.Errorf("want x,y got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.Position{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Position{}, err
	}
	return entity.Position{X: x, Y: y}, nil
}
