package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/packsync/packsync/internal/pack"
)

// IndexFile is the manifest written under the pack directory after each
// batch. Editors and completion scripts read it instead of shelling out.
const IndexFile = ".packsync-index.json"

type indexEntry struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Dir   string `json:"dir"`
	Hash  string `json:"hash,omitempty"`
}

// WriteIndex renders the installed set as a JSON manifest in packDir.
// The write is atomic; readers never observe a half-written index.
func WriteIndex(packDir string, packs []pack.Package) error {
	entries := make([]indexEntry, 0, len(packs))
	for _, p := range packs {
		entries = append(entries, indexEntry{
			Name:  p.Name,
			Class: p.Class(),
			Dir:   p.Dir,
			Hash:  p.Hash,
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(packDir, 0755); err != nil {
		return fmt.Errorf("creating pack dir %s: %w", packDir, err)
	}
	path := filepath.Join(packDir, IndexFile)
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing index %s: %w", path, err)
	}
	return nil
}
