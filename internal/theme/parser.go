package theme

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"reflect"
	"strings"

	"github.com/example/drawpad/internal/brush"
)

var rgbaType = reflect.TypeOf(color.RGBA{})

// Parse reads a theme definition from an io.Reader.
// The format is one "Key: colour" pair per line, where colour is anything
// the brush accepts (#RRGGBB, #RRGGBBAA or a colour name). Unknown keys are
// ignored; keys left out keep the default.
func Parse(r io.Reader) (*Theme, error) {
	t := Default()
	val := reflect.ValueOf(t).Elem()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "Name" {
			t.Name = value
			continue
		}
		field := val.FieldByName(key)
		if !field.IsValid() || field.Type() != rgbaType {
			continue
		}
		col, err := brush.ParseColor(value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
		field.Set(reflect.ValueOf(col))
	}
	return t, scanner.Err()
}
