package scripting

import (
	"fmt"
	"math"

	"github.com/teron/crusade/internal/component"
	"github.com/teron/crusade/internal/save"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua VM and runs the given script files in order.
func NewEngine(log *zap.Logger, files ...string) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	for _, f := range files {
		if err := vm.DoFile(f); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
		log.Debug("loaded lua script", zap.String("file", f))
	}
	return e, nil
}

// NewEngineFromString is NewEngine for an inline chunk.
func NewEngineFromString(log *zap.Logger, src string) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load lua chunk: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// DefaultWorld calls the Lua function default_world() and converts the
// table it returns:
//
//	{
//	  player_spawn = { x = 0, y = 300 },
//	  blocks = { { tile_set = "jungle_floor", tile_index = 0, x = -3, y = 0 }, ... },
//	  items  = { { name = "pickaxe", x = 40, y = 80 }, ... },
//	}
//
// A bad script is an error, never a fallback: the result becomes the saved
// world.
func (e *Engine) DefaultWorld() (*save.WorldRecord, error) {
	fn := e.vm.GetGlobal("default_world")
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("lua function default_world not found")
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		return nil, fmt.Errorf("lua default_world: %w", err)
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("lua default_world returned %s, want table", result.Type())
	}

	spawnT, ok := rt.RawGetString("player_spawn").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("default_world: player_spawn missing")
	}
	sx, err := intField(spawnT, "x")
	if err != nil {
		return nil, fmt.Errorf("default_world: player_spawn: %w", err)
	}
	sy, err := intField(spawnT, "y")
	if err != nil {
		return nil, fmt.Errorf("default_world: player_spawn: %w", err)
	}
	rec := save.NewWorldRecord(component.PixelPosition{X: sx, Y: sy})

	if err := eachRow(rt, "blocks", func(row *lua.LTable) error {
		name, ok := row.RawGetString("tile_set").(lua.LString)
		if !ok {
			return fmt.Errorf("tile_set missing")
		}
		idx, ok := row.RawGetString("tile_index").(lua.LNumber)
		if !ok || idx < 0 || float64(idx) >= 1<<64 || float64(idx) != math.Trunc(float64(idx)) {
			return fmt.Errorf("tile_index must be an integer in [0, 2^64)")
		}
		x, err := intField(row, "x")
		if err != nil {
			return err
		}
		y, err := intField(row, "y")
		if err != nil {
			return err
		}
		rec.AddBlock(save.BlockRecord{
			TileSet:   string(name),
			TileIndex: uint64(idx),
			TilePos:   component.GridPosition{X: x, Y: y},
		})
		return nil
	}); err != nil {
		return nil, err
	}

	if err := eachRow(rt, "items", func(row *lua.LTable) error {
		name, ok := row.RawGetString("name").(lua.LString)
		if !ok {
			return fmt.Errorf("name missing")
		}
		x, err := intField(row, "x")
		if err != nil {
			return err
		}
		y, err := intField(row, "y")
		if err != nil {
			return err
		}
		rec.AddItem(save.ItemRecord{ItemName: string(name), Position: component.PixelPosition{X: x, Y: y}})
		return nil
	}); err != nil {
		return nil, err
	}

	e.log.Info("default world built by script",
		zap.Int("blocks", len(rec.Blocks)),
		zap.Int("items", len(rec.Items)),
	)
	return rec, nil
}

// eachRow calls fn for each table in the array field key. A missing field
// is an empty list.
func eachRow(t *lua.LTable, key string, fn func(*lua.LTable) error) error {
	v := t.RawGetString(key)
	if v == lua.LNil {
		return nil
	}
	list, ok := v.(*lua.LTable)
	if !ok {
		return fmt.Errorf("default_world: %s is %s, want table", key, v.Type())
	}
	for i := 1; i <= list.Len(); i++ {
		row, ok := list.RawGetInt(i).(*lua.LTable)
		if !ok {
			return fmt.Errorf("default_world: %s[%d] is not a table", key, i)
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("default_world: %s[%d]: %w", key, i, err)
		}
	}
	return nil
}

func intField(t *lua.LTable, key string) (int32, error) {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s missing", key)
	}
	f := float64(n)
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%s = %v is not an int32", key, f)
	}
	return int32(f), nil
}
