package encoder

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

type skip2Backend struct{}

// skip2 names its four levels Low, Medium, High and Highest.
var skip2Levels = map[Level]qrcode.RecoveryLevel{
	Low:      qrcode.Low,
	Medium:   qrcode.Medium,
	Quartile: qrcode.High,
	High:     qrcode.Highest,
}

func (skip2Backend) encode(content string, level Level, version int) ([][]bool, error) {
	var (
		q   *qrcode.QRCode
		err error
	)
	if version > 0 {
		q, err = qrcode.NewWithForcedVersion(content, version, skip2Levels[level])
	} else {
		q, err = qrcode.New(content, skip2Levels[level])
	}
	if err != nil {
		// skip2 only fails here when the content does not fit.
		return nil, fmt.Errorf("%w: %v", ErrDataTooLong, err)
	}
	q.DisableBorder = true
	return q.Bitmap(), nil
}
