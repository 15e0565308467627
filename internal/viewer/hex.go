package viewer

import "fmt"

// cp437 maps each byte to the rune CP437 mode displays: the Code Page
// 437 glyph for the control characters 0x00-0x1F, the ASCII character
// for 0x20-0x7E, and '.' for 0x7F-0xFF (filled in by init). The control
// block is what distinguishes CP437 mode from the plain hex-dump ASCII
// gutter (which substitutes '.' for anything non-printable).
var cp437 = [256]rune{
	0x0020, 0x263A, 0x263B, 0x2665, 0x2666, 0x2663, 0x2660, 0x2022,
	0x25D8, 0x25CB, 0x25D9, 0x2642, 0x2640, 0x266A, 0x266B, 0x263C,
	0x25BA, 0x25C4, 0x2195, 0x203C, 0x00B6, 0x00A7, 0x25AC, 0x21A8,
	0x2191, 0x2193, 0x2192, 0x2190, 0x221F, 0x2194, 0x25B2, 0x25BC,
}

func init() {
	// Printable ASCII (0x20-0x7E) maps to itself; 0x7F and 0x80-0xFF
	// fall back to '.' here since a full 256-entry CP437 table is
	// mostly graphical box-drawing glyphs outside this package's needs —
	// the control-character block above is what differs meaningfully
	// from a plain ASCII gutter.
	for i := 0x20; i <= 0x7E; i++ {
		cp437[i] = rune(i)
	}
	for i := 0x7F; i <= 0xFF; i++ {
		if cp437[i] == 0 {
			cp437[i] = '.'
		}
	}
}

// CP437Rune returns the CP437 glyph for byte b.
func CP437Rune(b byte) rune { return cp437[b] }

func renderHex(data []byte, scroll, count int) []string {
	var out []string
	for row := scroll; row < scroll+count; row++ {
		off := row * 16
		if off >= len(data) {
			break
		}
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]
		hexPart := ""
		asciiPart := ""
		for i := 0; i < 16; i++ {
			if i < len(chunk) {
				hexPart += fmt.Sprintf("%02x ", chunk[i])
				b := chunk[i]
				if b >= 0x20 && b < 0x7F {
					asciiPart += string(rune(b))
				} else {
					asciiPart += "."
				}
			} else {
				hexPart += "   "
			}
			if i == 7 {
				hexPart += " "
			}
		}
		out = append(out, fmt.Sprintf("%08x  %s |%s|", off, hexPart, asciiPart))
	}
	return out
}

func renderCP437(data []byte, scroll, count int) []string {
	var out []string
	for row := scroll; row < scroll+count; row++ {
		off := row * 16
		if off >= len(data) {
			break
		}
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]
		glyphs := make([]rune, 0, 16)
		for _, b := range chunk {
			glyphs = append(glyphs, CP437Rune(b))
		}
		out = append(out, fmt.Sprintf("%08x  %s", off, string(glyphs)))
	}
	return out
}
