package palette

import (
	"encoding/json"
	"testing"
)

func TestColor_Hex(t *testing.T) {
	cases := map[Color]string{
		Black:             "#000000",
		Red:               "#FF0000",
		Gray:              "#888888",
		DefaultBackground: "#FFFFFF",
		0x80123ABC:        "#123ABC",
	}
	for c, want := range cases {
		if got := c.Hex(); got != want {
			t.Errorf("Hex(%08X) = %s, want %s", uint32(c), got, want)
		}
	}
}

func TestParseHex(t *testing.T) {
	t.Run("Accepts Long Form In Any Case", func(t *testing.T) {
		c, err := ParseHex("#ff00aa")
		if err != nil {
			t.Fatalf("ParseHex failed: %v", err)
		}
		if c != 0xFFFF00AA {
			t.Errorf("expected FFFF00AA, got %08X", uint32(c))
		}
	})

	t.Run("Accepts Short Form Without Hash", func(t *testing.T) {
		c, err := ParseHex("0F0")
		if err != nil {
			t.Fatalf("ParseHex failed: %v", err)
		}
		if c.Hex() != "#00FF00" {
			t.Errorf("expected #00FF00, got %s", c.Hex())
		}
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		for _, s := range []string{"", "#12", "#zzzzzz", "#1234567"} {
			if _, err := ParseHex(s); err == nil {
				t.Errorf("expected error for %q", s)
			}
		}
	})
}

func TestNormalizeHex(t *testing.T) {
	got, err := NormalizeHex("#abcdef")
	if err != nil {
		t.Fatalf("NormalizeHex failed: %v", err)
	}
	if got != "#ABCDEF" {
		t.Errorf("expected #ABCDEF, got %s", got)
	}
}

func TestColor_RGB(t *testing.T) {
	r, g, b := FromRGB(1, 2, 3).RGB()
	if r != 1 || g != 2 || b != 3 {
		t.Errorf("unexpected channels %d %d %d", r, g, b)
	}
	if FromRGB(1, 2, 3).Alpha() != 0xFF {
		t.Error("expected opaque color")
	}
}

func TestColor_Text(t *testing.T) {
	t.Run("Encodes As Hex", func(t *testing.T) {
		out, err := json.Marshal(struct {
			C Color `json:"c"`
		}{C: Blue})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(out) != `{"c":"#0000FF"}` {
			t.Errorf("unexpected json %s", out)
		}
	})

	t.Run("Decodes Short Form", func(t *testing.T) {
		var c Color
		if err := c.UnmarshalText([]byte("#0f0")); err != nil {
			t.Fatalf("UnmarshalText failed: %v", err)
		}
		if c != Green {
			t.Errorf("expected green, got %s", c)
		}
	})

	t.Run("Rejects Garbage", func(t *testing.T) {
		var c Color
		if err := c.UnmarshalText([]byte("purple")); err == nil {
			t.Error("expected error for non-hex color")
		}
	})
}
