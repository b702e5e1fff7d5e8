package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Errors returned by keymap loading.
var (
	// ErrBadScancode indicates a scancode outside [0x00, 0xFF].
	ErrBadScancode = errors.New("scancode out of range")

	// ErrBadKeySpec indicates a key definition with no usable binding.
	ErrBadKeySpec = errors.New("key defines no binding")

	// ErrUnknownModifier indicates an unrecognized modifier name.
	ErrUnknownModifier = errors.New("unknown modifier name")
)

// tableConfig is the on-disk layout shared by the JSON and Lua loaders.
type tableConfig struct {
	Name    string      `json:"name"`
	Inherit string      `json:"inherit"`
	Keys    []keyConfig `json:"keys"`
}

// keyConfig describes one key binding. Exactly one of base/code, modifier,
// or escaped must be present.
type keyConfig struct {
	Scancode string `json:"scancode"`
	Extended bool   `json:"extended"`

	// Character binding.
	Base   string `json:"base"`
	Shift  string `json:"shift"`
	Letter bool   `json:"letter"`

	// Raw control code binding (decimal byte value).
	Code int `json:"code"`

	// Modifier binding: lshift, rshift, lctrl, rctrl, lmeta, rmeta, capslock.
	Modifier string `json:"modifier"`

	// Escaped binding: single uppercase letter sent as ESC <letter>.
	Escaped string `json:"escaped"`
}

var modifierNames = map[string]Entry{
	"lshift":   ModifierEntry(ModLeftShift),
	"rshift":   ModifierEntry(ModRightShift),
	"lctrl":    ModifierEntry(ModLeftCtrl),
	"rctrl":    ModifierEntry(ModRightCtrl),
	"lmeta":    ModifierEntry(ModLeftMeta),
	"rmeta":    ModifierEntry(ModRightMeta),
	"capslock": CapsLockEntry(),
}

// LoadFile loads a translation table from a JSON file.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	t, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("keymap %s: %w", path, err)
	}
	return t, nil
}

// LoadReader loads a translation table from JSON data.
func LoadReader(r io.Reader) (*Table, error) {
	var config tableConfig
	if err := json.NewDecoder(r).Decode(&config); err != nil {
		return nil, fmt.Errorf("decoding keymap: %w", err)
	}
	return buildTable(&config)
}

// buildTable applies a parsed config, starting from the built-in layout when
// inherit is "default" and from an empty table otherwise.
func buildTable(config *tableConfig) (*Table, error) {
	var t *Table
	if config.Inherit == "default" {
		t = Default()
	} else {
		t = &Table{}
	}

	for i, kc := range config.Keys {
		if err := applyKey(t, kc); err != nil {
			return nil, fmt.Errorf("key %d: %w", i, err)
		}
	}
	return t, nil
}

func applyKey(t *Table, kc keyConfig) error {
	scancode, err := parseScancode(kc.Scancode)
	if err != nil {
		return err
	}

	switch {
	case kc.Modifier != "":
		e, ok := modifierNames[kc.Modifier]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownModifier, kc.Modifier)
		}
		t.SetAllPlanes(kc.Extended, scancode, e)

	case kc.Escaped != "":
		c := kc.Escaped[0]
		if len(kc.Escaped) != 1 || c < 'A' || c > 'Z' {
			return fmt.Errorf("escaped binding must be one uppercase letter, got %q", kc.Escaped)
		}
		t.SetAllPlanes(kc.Extended, scancode, Escaped(c))

	case kc.Base != "":
		base := kc.Base[0]
		shifted := base
		if kc.Shift != "" {
			shifted = kc.Shift[0]
		}
		t.SetChar(kc.Extended, scancode, base, shifted, kc.Letter)

	case kc.Code != 0:
		if kc.Code < 0 || kc.Code > 0x7F {
			return fmt.Errorf("code %d out of ASCII range", kc.Code)
		}
		t.SetAllPlanes(kc.Extended, scancode, Regular(byte(kc.Code)))

	default:
		return ErrBadKeySpec
	}
	return nil
}

func parseScancode(s string) (byte, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadScancode)
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadScancode, s)
	}
	if v > 0xFF {
		return 0, fmt.Errorf("%w: %q", ErrBadScancode, s)
	}
	return byte(v), nil
}
