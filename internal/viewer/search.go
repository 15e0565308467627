package viewer

import "bytes"

// Search returns the byte offsets of every non-overlapping occurrence
// of needle within the mapped file, case-sensitively or not. Matches
// are "byte-anchored": a later Tab between Text/Hex/CP437 rendering
// recomputes the cursor's line/row from the same offset rather than
// re-running the search, per SPEC_FULL.md §8.
func (v *File) Search(needle []byte, caseSensitive bool) []int64 {
	if len(needle) == 0 {
		return nil
	}
	haystack := v.data[:]
	target := needle
	if !caseSensitive {
		haystack = bytes.ToLower(append([]byte(nil), v.data...))
		target = bytes.ToLower(needle)
	}
	var matches []int64
	start := 0
	for {
		idx := bytes.Index(haystack[start:], target)
		if idx < 0 {
			break
		}
		abs := start + idx
		matches = append(matches, int64(abs))
		start = abs + len(target)
		if start >= len(haystack) {
			break
		}
	}
	return matches
}

// SearchHex parses hexDigits (pairs of hex characters, whitespace
// ignored) into bytes and searches for that byte sequence.
func SearchHex(v *File, hexDigits string) ([]int64, error) {
	needle, err := parseHexBytes(hexDigits)
	if err != nil {
		return nil, err
	}
	return v.Search(needle, true), nil
}

func parseHexBytes(s string) ([]byte, error) {
	var digits []byte
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		digits = append(digits, byte(r))
	}
	if len(digits)%2 != 0 {
		return nil, errOddHexDigits
	}
	out := make([]byte, len(digits)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := hexVal(digits[i*2])
		lo, ok2 := hexVal(digits[i*2+1])
		if !ok1 || !ok2 {
			return nil, errBadHexDigit
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

var (
	errOddHexDigits = simpleErr("viewer: odd number of hex digits")
	errBadHexDigit  = simpleErr("viewer: invalid hex digit")
)

type simpleErr string

func (e simpleErr) Error() string { return string(e) }
