// Package encoder turns text into a QR module grid using one of the
// supported QR libraries, and applies the version, level and mask knobs
// exposed by the options form on top of them.
package encoder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDataTooLong means the content does not fit within the allowed
	// version range at the requested error correction level.
	ErrDataTooLong = errors.New("data too long")
	// ErrInvalidRequest covers malformed encoder requests.
	ErrInvalidRequest = errors.New("invalid encoder request")
)

// DataTooLongMessage is the user-facing text for ErrDataTooLong.
const DataTooLongMessage = "The data is too long. Please enter less text or increase the maximum QR version."

// AutoMask lets the library pick the mask pattern.
const AutoMask = -1

const (
	MinVersion = 1
	MaxVersion = 40
)

// Level is the error correction level.
type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "L"
	case Medium:
		return "M"
	case Quartile:
		return "Q"
	case High:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts single letters as well as the long names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return Low, nil
	case "M", "MEDIUM":
		return Medium, nil
	case "Q", "QUARTILE":
		return Quartile, nil
	case "H", "HIGH", "":
		return High, nil
	}
	return High, fmt.Errorf("%w: unknown error correction level %q", ErrInvalidRequest, s)
}

func (l Level) valid() bool { return l >= Low && l <= High }

// Request describes what to encode and how.
type Request struct {
	Content    string
	Level      Level
	MinVersion int
	MaxVersion int
	// Mask is the forced mask pattern 0-7, or AutoMask.
	Mask int
	// BoostECL raises the level as far as possible without growing the version.
	BoostECL bool
}

// DefaultRequest mirrors the defaults of the options form.
func DefaultRequest(content string) Request {
	return Request{
		Content:    content,
		Level:      High,
		MinVersion: MinVersion,
		MaxVersion: MaxVersion,
		Mask:       AutoMask,
		BoostECL:   true,
	}
}

func (r Request) Validate() error {
	if r.Content == "" {
		return fmt.Errorf("%w: content is empty", ErrInvalidRequest)
	}
	if !r.Level.valid() {
		return fmt.Errorf("%w: unknown error correction level %d", ErrInvalidRequest, int(r.Level))
	}
	if r.MinVersion < MinVersion || r.MaxVersion > MaxVersion || r.MinVersion > r.MaxVersion {
		return fmt.Errorf("%w: version range %d-%d outside 1-40", ErrInvalidRequest, r.MinVersion, r.MaxVersion)
	}
	if r.Mask < AutoMask || r.Mask > 7 {
		return fmt.Errorf("%w: mask must be auto or 0-7 (got %d)", ErrInvalidRequest, r.Mask)
	}
	return nil
}

// Result is an encoded symbol without quiet zone. Modules is indexed [y][x].
type Result struct {
	Modules [][]bool
	Version int
	Size    int
	Level   Level
	Mask    int
}

// Encoder produces module grids.
type Encoder interface {
	Name() string
	Encode(req Request) (Result, error)
}

// backend encodes content at a level. A version of 0 means the smallest
// version that fits; otherwise the symbol must use exactly that version.
type backend interface {
	encode(content string, level Level, version int) ([][]bool, error)
}

type libraryEncoder struct {
	name string
	b    backend
}

func (e *libraryEncoder) Name() string { return e.name }

// Encode picks the version, boosts the level and applies the mask override.
func (e *libraryEncoder) Encode(req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	modules, version, err := e.encodeAt(req.Content, req.Level, 0)
	if err != nil {
		return Result{}, err
	}
	if version > req.MaxVersion {
		return Result{}, fmt.Errorf("%w: needs version %d, maximum is %d", ErrDataTooLong, version, req.MaxVersion)
	}
	if version < req.MinVersion {
		modules, version, err = e.encodeAt(req.Content, req.Level, req.MinVersion)
		if err != nil {
			return Result{}, err
		}
	}

	if req.BoostECL {
		for l := High; l > req.Level; l-- {
			boosted, v, err := e.encodeAt(req.Content, l, version)
			if err == nil && v == version {
				modules = boosted
				break
			}
		}
	}

	level, mask, err := ReadFormat(modules)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", e.name, err)
	}
	if req.Mask != AutoMask && req.Mask != mask {
		if err := Remask(modules, mask, req.Mask); err != nil {
			return Result{}, err
		}
		mask = req.Mask
	}

	return Result{
		Modules: modules,
		Version: version,
		Size:    len(modules),
		Level:   level,
		Mask:    mask,
	}, nil
}

func (e *libraryEncoder) encodeAt(content string, level Level, version int) ([][]bool, int, error) {
	modules, err := e.b.encode(content, level, version)
	if err != nil {
		return nil, 0, err
	}
	v, err := versionOf(len(modules))
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", e.name, err)
	}
	if version > 0 && v != version {
		return nil, 0, fmt.Errorf("%w: %s produced version %d instead of %d", ErrDataTooLong, e.name, v, version)
	}
	return modules, v, nil
}

func versionOf(size int) (int, error) {
	if size < 21 || (size-17)%4 != 0 || size > 177 {
		return 0, fmt.Errorf("unexpected symbol size %d", size)
	}
	return (size - 17) / 4, nil
}

// Names lists the available encoders, default first.
func Names() []string { return []string{"skip2", "yeqown"} }

// New returns the encoder called name. The empty name selects skip2.
func New(name string) (Encoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "skip2":
		return &libraryEncoder{name: "skip2", b: skip2Backend{}}, nil
	case "yeqown":
		return &libraryEncoder{name: "yeqown", b: yeqownBackend{}}, nil
	}
	return nil, fmt.Errorf("%w: unknown encoder %q", ErrInvalidRequest, name)
}
