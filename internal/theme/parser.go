package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var rgbaType = reflect.TypeOf(color.RGBA{})

// Parse reads a theme definition from an io.Reader.
// The format is a simple key-value pair per line: Key: #RRGGBB, #RRGGBBAA
// or an SVG color name.
func Parse(r io.Reader) (*Theme, error) {
	t := Default() // Start with defaults
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if err := t.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])); err != nil {
			return nil, err
		}
	}

	return t, scanner.Err()
}

// Set assigns one field by case-insensitive name. Unknown keys are
// ignored for forward compatibility.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	field, ok := t.field(key)
	if !ok {
		return nil
	}
	col, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	field.Set(reflect.ValueOf(col))
	return nil
}

func (t *Theme) field(key string) (reflect.Value, bool) {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type == rgbaType && strings.EqualFold(f.Name, key) {
			return val.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Fields returns the color fields of t in declaration order.
func (t *Theme) Fields() []Field {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	var out []Field
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).Type != rgbaType {
			continue
		}
		out = append(out, Field{Name: typ.Field(i).Name, Color: val.Field(i).Interface().(color.RGBA)})
	}
	return out
}

// Field is a named theme color.
type Field struct {
	Name  string
	Color color.RGBA
}

// ParseColor parses #RRGGBB, #RRGGBBAA or a color name such as "gold".
func ParseColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return color.RGBA{}, fmt.Errorf("color must start with # or be a known name")
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		// #RRGGBB
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 16),
			G: uint8((val >> 8) & 0xFF),
			B: uint8(val & 0xFF),
			A: 255,
		}, nil
	} else if len(hex) == 8 {
		// #RRGGBBAA
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{
			R: uint8(val >> 24),
			G: uint8((val >> 16) & 0xFF),
			B: uint8((val >> 8) & 0xFF),
			A: uint8(val & 0xFF),
		}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

// Hex formats c the way ParseColor reads it.
func Hex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
