package encoder

import (
	"fmt"

	"github.com/yeqown/go-qrcode/v2"
)

type yeqownBackend struct{}

var yeqownLevels = map[Level]qrcode.EncodeOption{
	Low:      qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow),
	Medium:   qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium),
	Quartile: qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart),
	High:     qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest),
}

func (yeqownBackend) encode(content string, level Level, version int) (modules [][]bool, err error) {
	// Forcing a version that is too small can make the library index past
	// its capacity tables.
	defer func() {
		if r := recover(); r != nil {
			modules, err = nil, fmt.Errorf("%w: yeqown: %v", ErrDataTooLong, r)
		}
	}()

	opts := []qrcode.EncodeOption{yeqownLevels[level]}
	if version > 0 {
		opts = append(opts, qrcode.WithVersion(version))
	}
	qrc, err := qrcode.NewWith(content, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: yeqown: %v", ErrDataTooLong, err)
	}

	w := &gridWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("yeqown: capture matrix: %w", err)
	}
	if len(w.modules) != qrc.Dimension() {
		return nil, fmt.Errorf("yeqown: matrix is %d modules, want %d", len(w.modules), qrc.Dimension())
	}
	return w.modules, nil
}

// gridWriter is a qrcode.Writer that keeps the bare matrix instead of
// drawing it.
type gridWriter struct {
	modules [][]bool
}

func (w *gridWriter) Write(mat qrcode.Matrix) error {
	rows, cols := mat.Height(), mat.Width()
	if rows != cols {
		return fmt.Errorf("matrix is not square: %dx%d", cols, rows)
	}
	w.modules = make([][]bool, rows)
	for y := range w.modules {
		w.modules[y] = make([]bool, cols)
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.modules[y][x] = v.IsSet()
	})
	return nil
}

func (w *gridWriter) Close() error { return nil }
