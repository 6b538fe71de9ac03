package data

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// ItemInfo is the static definition of a world item.
type ItemInfo struct {
	Name      string `yaml:"name"`
	Sprite    string `yaml:"sprite"`
	StackSize int    `yaml:"stack_size"`
}

type itemListFile struct {
	Items []ItemInfo `yaml:"items"`
}

// ItemTable resolves item names to their definitions. Read-only after load.
type ItemTable struct {
	items map[string]*ItemInfo
}

// NewItemTable builds a table from in-memory definitions. Later entries
// with the same name replace earlier ones.
func NewItemTable(items ...ItemInfo) *ItemTable {
	t := &ItemTable{items: make(map[string]*ItemInfo, len(items))}
	for i := range items {
		it := items[i]
		if it.StackSize <= 0 {
			it.StackSize = 1
		}
		t.items[normName(it.Name)] = &it
	}
	return t
}

// Get returns the item definition, or nil if the name is unknown.
func (t *ItemTable) Get(name string) *ItemInfo {
	return t.items[normName(name)]
}

// Count returns the number of item definitions.
func (t *ItemTable) Count() int {
	return len(t.items)
}

// LoadItemTable loads item definitions from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item list: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item list: %w", err)
	}
	for i, it := range f.Items {
		if it.Name == "" {
			return nil, fmt.Errorf("item list entry %d: missing name", i)
		}
	}
	return NewItemTable(f.Items...), nil
}

// normName puts catalog keys and lookups in NFC so that composed and
// decomposed spellings of the same name resolve alike.
func normName(s string) string {
	return norm.NFC.String(s)
}
