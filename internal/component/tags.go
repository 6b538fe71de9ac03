package component

// Block marks a persisted tile block and carries its tile identity.
type Block struct {
	TileSet   string
	TileIndex uint64
}

// Item marks a persisted world item.
type Item struct {
	Name string
}

// Player marks the player entity. The world holds exactly one.
type Player struct{}
