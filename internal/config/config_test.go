package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/vt52/internal/serial"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Screen.Rows != 24 || c.Screen.Cols != 80 {
		t.Errorf("got %dx%d, want 24x80", c.Screen.Rows, c.Screen.Cols)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "term.toml", `
[screen]
rows = 25
cols = 132

[timing]
serial_timeout_ms = 2000

[serial.rx]
char_bits = 7
parity = "even"
stop_bits = "2"
divisor = 8
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Screen.Rows != 25 || c.Screen.Cols != 132 {
		t.Errorf("screen = %dx%d", c.Screen.Rows, c.Screen.Cols)
	}
	if c.Timing.KeyboardTimeoutMS != 5000 {
		t.Error("unset fields should keep defaults")
	}

	rx, err := c.RXConfig()
	if err != nil {
		t.Fatalf("RXConfig: %v", err)
	}
	want := serial.Config{CharBits: 7, Parity: serial.ParityEven, StopBits: serial.Stop2, Divisor: 8}
	if rx != want {
		t.Errorf("rx = %+v, want %+v", rx, want)
	}

	// TX untouched by the file.
	tx, err := c.TXConfig()
	if err != nil {
		t.Fatalf("TXConfig: %v", err)
	}
	if tx.CharBits != 8 || tx.Parity != serial.ParityNone {
		t.Errorf("tx = %+v, want defaults", tx)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"tiny screen", "[screen]\nrows = 1\ncols = 80\n"},
		{"bad parity", "[serial.tx]\nchar_bits = 8\nparity = \"mark\"\nstop_bits = \"1\"\ndivisor = 16\n"},
		{"bad stop bits", "[serial.rx]\nchar_bits = 8\nparity = \"none\"\nstop_bits = \"3\"\ndivisor = 16\n"},
		{"bad keymap ext", "[keyboard]\nkeymap = \"map.yaml\"\n"},
		{"zero tick rate", "[timing]\nticks_per_second = 0\n"},
	}
	for _, tc := range cases {
		path := writeFile(t, "bad.toml", tc.body)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestTicksConversion(t *testing.T) {
	c := DefaultConfig() // 10000 ticks/s
	if got := c.Ticks(500); got != 5000 {
		t.Errorf("Ticks(500) = %d, want 5000", got)
	}
	if got := c.Ticks(0); got != 0 {
		t.Errorf("Ticks(0) = %d, want 0", got)
	}
	c.Timing.TicksPerSecond = 100
	if got := c.Ticks(1); got != 1 {
		t.Errorf("sub-tick durations must round up to 1, got %d", got)
	}
}

func TestDerivedConfigs(t *testing.T) {
	c := DefaultConfig()
	dc := c.DecoderConfig()
	if dc.RepeatDelayTicks != 5000 || dc.RepeatIntervalTicks != 1000 {
		t.Errorf("decoder config = %+v", dc)
	}
	ic := c.InterpConfig()
	if ic.KeyboardTimeoutTicks != 50000 || ic.SerialTimeoutTicks != 10000 {
		t.Errorf("interp config = %+v", ic)
	}
}

func TestLoadKeymapDefault(t *testing.T) {
	c := DefaultConfig()
	tbl, err := c.LoadKeymap()
	if err != nil {
		t.Fatalf("LoadKeymap: %v", err)
	}
	if tbl == nil {
		t.Fatal("nil table")
	}
}

func TestLoadKeymapFromJSON(t *testing.T) {
	path := writeFile(t, "map.json", `{"inherit": "default", "keys": []}`)
	c := DefaultConfig()
	c.Keyboard.Keymap = path
	if _, err := c.LoadKeymap(); err != nil {
		t.Fatalf("LoadKeymap: %v", err)
	}
}

func TestLoadKeymapFromLua(t *testing.T) {
	path := writeFile(t, "map.lua", `return { inherit = "default", keys = {} }`)
	c := DefaultConfig()
	c.Keyboard.Keymap = path
	if _, err := c.LoadKeymap(); err != nil {
		t.Fatalf("LoadKeymap: %v", err)
	}
}
