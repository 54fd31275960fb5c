package render

import "fmt"

// ModuleGrid is an immutable square grid of modules; true is dark.
type ModuleGrid struct {
	size    int
	modules []bool
}

// NewModuleGrid copies rows (indexed rows[y][x]) into a ModuleGrid. The rows
// must form a non-empty square.
func NewModuleGrid(rows [][]bool) (ModuleGrid, error) {
	size := len(rows)
	if size == 0 {
		return ModuleGrid{}, fmt.Errorf("%w: empty module grid", ErrInvalidRenderParameters)
	}
	modules := make([]bool, size*size)
	for y, row := range rows {
		if len(row) != size {
			return ModuleGrid{}, fmt.Errorf("%w: module grid row %d has %d modules, want %d", ErrInvalidRenderParameters, y, len(row), size)
		}
		copy(modules[y*size:], row)
	}
	return ModuleGrid{size: size, modules: modules}, nil
}

// Size returns the number of modules per side.
func (g ModuleGrid) Size() int { return g.size }

// Dark reports whether module (x, y) is dark. Out of range modules are light.
func (g ModuleGrid) Dark(x, y int) bool {
	if x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.modules[y*g.size+x]
}
