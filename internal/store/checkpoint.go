package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Checkpoint is the processed-ID set that makes long passes resumable.
// It is read once at start and appended to monotonically: IDs are only
// ever added. The on-disk file is the single source of truth for
// "already processed".
type Checkpoint struct {
	path  string
	ids   map[string]bool
	dirty int
}

type checkpointFile struct {
	Processed []string `json:"processed"`
}

// LoadCheckpoint reads the checkpoint file; a missing file starts an
// empty set.
func LoadCheckpoint(path string) (*Checkpoint, error) {
	cp := &Checkpoint{path: path, ids: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}

	var file checkpointFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse checkpoint: %w", err)
	}
	for _, id := range file.Processed {
		cp.ids[id] = true
	}
	return cp, nil
}

// Contains reports whether an ID was already processed.
func (c *Checkpoint) Contains(id string) bool {
	return c.ids[id]
}

// Add marks an ID processed. Adding is monotonic; there is no remove.
func (c *Checkpoint) Add(id string) {
	if !c.ids[id] {
		c.ids[id] = true
		c.dirty++
	}
}

// Len reports the number of processed IDs.
func (c *Checkpoint) Len() int {
	return len(c.ids)
}

// Dirty reports how many IDs were added since the last flush.
func (c *Checkpoint) Dirty() int {
	return c.dirty
}

// Flush persists the set. Sorted output keeps the file diffable.
func (c *Checkpoint) Flush() error {
	ids := make([]string, 0, len(c.ids))
	for id := range c.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(checkpointFile{Processed: ids}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	c.dirty = 0
	return nil
}
