// Package archive files finished world documents under a long-term archives
// directory so the working saves area can be pruned without losing history.
package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gridcraft.ai/internal/persistence/snapshot"
)

type Meta struct {
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Entities  int    `json:"entities"`
	Document  string `json:"document"`
	CreatedAt string `json:"created_at"`
}

// ArchiveWorldDoc copies the document file at docPath into
// `dir/archives/<name>/` and writes a meta.json beside it. The destination
// for a given name is overwritten on repeat archives.
func ArchiveWorldDoc(dir, name, docPath string, doc snapshot.WorldDocV1) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty archive name")
	}

	archiveDir := filepath.Join(dir, "archives", name)
	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(archiveDir, filepath.Base(docPath))
	if err := copyFile(docPath, dst); err != nil {
		return "", err
	}

	meta := Meta{
		Name:      name,
		Width:     doc.Width,
		Height:    doc.Height,
		Entities:  len(doc.Entities),
		Document:  filepath.Base(dst),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(archiveDir, "meta.json"), b, 0o644); err != nil {
		return "", err
	}

	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
