package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TileSetInfo describes a sprite sheet cut into a grid of square tiles.
type TileSetInfo struct {
	Name     string `yaml:"name"`
	Sheet    string `yaml:"sheet"`
	TileSize int    `yaml:"tile_size"`
	Columns  int    `yaml:"columns"`
	Rows     int    `yaml:"rows"`
}

// Tiles returns how many tiles the sheet holds.
func (ts *TileSetInfo) Tiles() uint64 {
	return uint64(ts.Columns) * uint64(ts.Rows)
}

type tileSetListFile struct {
	TileSets []TileSetInfo `yaml:"tile_sets"`
}

// TileSetTable resolves tile-set names to sheets. Read-only after load.
type TileSetTable struct {
	sets map[string]*TileSetInfo
}

func NewTileSetTable(sets ...TileSetInfo) *TileSetTable {
	t := &TileSetTable{sets: make(map[string]*TileSetInfo, len(sets))}
	for i := range sets {
		ts := sets[i]
		t.sets[normName(ts.Name)] = &ts
	}
	return t
}

// Get returns the tile set, or nil if the name is unknown.
func (t *TileSetTable) Get(name string) *TileSetInfo {
	return t.sets[normName(name)]
}

// Count returns the number of tile sets.
func (t *TileSetTable) Count() int {
	return len(t.sets)
}

// LoadTileSetTable loads tile-set definitions from a YAML file.
func LoadTileSetTable(path string) (*TileSetTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tile set list: %w", err)
	}
	var f tileSetListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tile set list: %w", err)
	}
	for _, ts := range f.TileSets {
		if ts.Name == "" || ts.Columns <= 0 || ts.Rows <= 0 {
			return nil, fmt.Errorf("tile set %q: name, columns and rows are required", ts.Name)
		}
	}
	return NewTileSetTable(f.TileSets...), nil
}
