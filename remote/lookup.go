package remote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

var ErrUnknownButton = errors.New("unknown button")

// All returns every button in table order. The slice is a copy.
func All() []Button {
	out := make([]Button, len(buttons))
	copy(out, buttons[:])
	return out
}

// Lookup resolves a decoded scan code. ok is false when no button uses the code.
func Lookup(code byte) (Button, bool) {
	b := Button(code)
	_, ok := names[b]
	return b, ok
}

// Parse resolves a button by name. Canonical names are matched case-insensitively,
// and kebab or camel case aliases like "seek-left" or "SeekLeft" are accepted too.
func Parse(name string) (Button, error) {
	if b, ok := byName[strings.ToUpper(name)]; ok {
		return b, nil
	}
	if b, ok := byName[strcase.ToScreamingSnake(name)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButton, name)
}

// Digit returns the numeric value of ZERO through NINE.
func Digit(b Button) (int, bool) {
	d, ok := digits[b]
	return d, ok
}

var byName = func() map[string]Button {
	m := make(map[string]Button, len(names))
	for b, name := range names {
		m[name] = b
	}
	return m
}()

func (b Button) Code() byte {
	return byte(b)
}

// Known reports whether b is one of the table's buttons.
func (b Button) Known() bool {
	_, ok := names[b]
	return ok
}

func (b Button) String() string {
	if name, ok := names[b]; ok {
		return name
	}
	return fmt.Sprintf("Button(0x%02X)", uint8(b))
}

// Alias is the lower kebab case form of the name, used in URLs.
func (b Button) Alias() string {
	return strcase.ToKebab(b.String())
}

func (b Button) MarshalText() ([]byte, error) {
	if !b.Known() {
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownButton, uint8(b))
	}
	return []byte(b.String()), nil
}

func (b *Button) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
