package encoder

import (
	"fmt"
	"math/bits"
)

// Format information is a 15 bit BCH word holding the level and mask,
// stored twice around the finder patterns.

// levelBits are the two level bits as they appear in the format word.
var levelBits = [...]int{Low: 1, Medium: 0, Quartile: 3, High: 2}

// formatWord returns the masked 15 bit format word for level and mask.
func formatWord(level Level, mask int) int {
	data := levelBits[level]<<3 | mask
	rem := data
	for i := 0; i < 10; i++ {
		rem = (rem << 1) ^ ((rem >> 9) * 0x537)
	}
	return (data<<10 | rem) ^ 0x5412
}

// formatPositions returns the module coordinates of format bit i in both
// copies, as (x, y) pairs.
func formatPositions(size, i int) (first, second [2]int) {
	switch {
	case i < 6:
		first = [2]int{8, i}
	case i == 6:
		first = [2]int{8, 7}
	case i == 7:
		first = [2]int{8, 8}
	case i == 8:
		first = [2]int{7, 8}
	default:
		first = [2]int{14 - i, 8}
	}
	if i < 8 {
		second = [2]int{size - 1 - i, 8}
	} else {
		second = [2]int{8, size - 15 + i}
	}
	return first, second
}

// maxFormatDistance is the number of bit errors a format word can correct.
const maxFormatDistance = 3

// ReadFormat decodes the error correction level and mask pattern from the
// format information of a bare symbol (no quiet zone), indexed [y][x].
func ReadFormat(modules [][]bool) (Level, int, error) {
	size := len(modules)
	if _, err := versionOf(size); err != nil {
		return 0, 0, err
	}
	var first, second int
	for i := 0; i < 15; i++ {
		a, b := formatPositions(size, i)
		if modules[a[1]][a[0]] {
			first |= 1 << i
		}
		if modules[b[1]][b[0]] {
			second |= 1 << i
		}
	}

	best, bestLevel, bestMask := 16, Level(0), 0
	for l := Low; l <= High; l++ {
		for m := 0; m < 8; m++ {
			w := formatWord(l, m)
			d := min(bits.OnesCount(uint(w^first)), bits.OnesCount(uint(w^second)))
			if d < best {
				best, bestLevel, bestMask = d, l, m
			}
		}
	}
	if best > maxFormatDistance {
		return 0, 0, fmt.Errorf("unreadable format information (%d bit errors)", best)
	}
	return bestLevel, bestMask, nil
}

// writeFormat stores both format copies and the dark module.
func writeFormat(modules [][]bool, level Level, mask int) {
	size := len(modules)
	w := formatWord(level, mask)
	for i := 0; i < 15; i++ {
		bit := (w>>i)&1 == 1
		a, b := formatPositions(size, i)
		modules[a[1]][a[0]] = bit
		modules[b[1]][b[0]] = bit
	}
	modules[size-8][8] = true
}

// maskInverts reports whether mask pattern m flips the module at column x,
// row y.
func maskInverts(m, x, y int) bool {
	switch m {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	}
	return false
}

// alignmentPositions returns the row/column centers of the alignment
// patterns for version v.
func alignmentPositions(v int) []int {
	if v == 1 {
		return nil
	}
	size := 17 + 4*v
	n := v/7 + 2
	step := 26
	if v != 32 {
		step = (v*4 + n*2 + 1) / (n*2 - 2) * 2
	}
	out := make([]int, 1, n)
	out[0] = 6
	for pos := size - 7; len(out) < n; pos -= step {
		out = append(out, 0)
		copy(out[2:], out[1:])
		out[1] = pos
	}
	return out
}

// functionModules marks every module that is not part of the data area:
// finders with separators and format areas, timing lines, alignment
// patterns and version information.
func functionModules(v int) [][]bool {
	size := 17 + 4*v
	fn := make([][]bool, size)
	for y := range fn {
		fn[y] = make([]bool, size)
	}
	mark := func(x0, y0, w, h int) {
		for y := y0; y < y0+h; y++ {
			for x := x0; x < x0+w; x++ {
				fn[y][x] = true
			}
		}
	}

	mark(0, 0, 9, 9)
	mark(size-8, 0, 8, 9)
	mark(0, size-8, 9, 8)
	mark(6, 0, 1, size)
	mark(0, 6, size, 1)

	pos := alignmentPositions(v)
	last := len(pos) - 1
	for i, cy := range pos {
		for j, cx := range pos {
			if (i == 0 && j == 0) || (i == 0 && j == last) || (i == last && j == 0) {
				continue
			}
			mark(cx-2, cy-2, 5, 5)
		}
	}

	if v >= 7 {
		mark(size-11, 0, 3, 6)
		mark(0, size-11, 6, 3)
	}
	return fn
}

// Remask switches a symbol from mask pattern from to mask pattern to by
// flipping the data modules where the two patterns differ, then rewrites
// the format information. The level is preserved.
func Remask(modules [][]bool, from, to int) error {
	if from < 0 || from > 7 || to < 0 || to > 7 {
		return fmt.Errorf("%w: mask must be 0-7 (got %d and %d)", ErrInvalidRequest, from, to)
	}
	v, err := versionOf(len(modules))
	if err != nil {
		return err
	}
	level, current, err := ReadFormat(modules)
	if err != nil {
		return err
	}
	if current != from {
		return fmt.Errorf("%w: symbol uses mask %d, not %d", ErrInvalidRequest, current, from)
	}
	if from == to {
		return nil
	}

	fn := functionModules(v)
	for y, row := range modules {
		for x := range row {
			if !fn[y][x] && maskInverts(from, x, y) != maskInverts(to, x, y) {
				row[x] = !row[x]
			}
		}
	}
	writeFormat(modules, level, to)
	return nil
}
