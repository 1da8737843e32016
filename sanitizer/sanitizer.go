// FILE: lixenwraith/duallog/sanitizer/sanitizer.go
// Package sanitizer rewrites untrusted text so a log record always occupies exactly one
// output line. Rules pair a Filter bitmask with a Transform and are evaluated in order.
package sanitizer

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Filter selects the runes a rule applies to. Values may be combined with |.
type Filter uint64

const (
	FilterNonPrintable Filter = 1 << iota // !strconv.IsPrint
	FilterControl                         // unicode.IsControl
	FilterWhitespace                      // unicode.IsSpace
)

// Transform is the rewrite applied to a matched rune
type Transform uint8

const (
	TransformStrip      Transform = iota + 1 // drop the rune
	TransformHexEncode                       // "<c285>", the rune's UTF-8 bytes in hex
	TransformJSONEscape                      // "\n", "\u0001"
)

// Policy names a preset rule list
type Policy string

const (
	PolicyRaw  Policy = "raw"
	PolicyTxt  Policy = "txt"
	PolicyJSON Policy = "json"
)

type rule struct {
	filter    Filter
	transform Transform
}

var presets = map[Policy][]rule{
	PolicyRaw:  nil,
	PolicyTxt:  {{FilterNonPrintable, TransformHexEncode}},
	PolicyJSON: {{FilterControl, TransformJSONEscape}},
}

// Sanitizer holds an ordered rule list. Once built it is read-only and safe for concurrent use.
type Sanitizer struct {
	rules []rule
}

// New returns a sanitizer without rules, which copies input unchanged
func New() *Sanitizer {
	return &Sanitizer{}
}

// Rule appends a rule. For each rune the first matching rule wins.
func (s *Sanitizer) Rule(filter Filter, transform Transform) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy appends the rules of a preset. Unknown presets add nothing.
func (s *Sanitizer) Policy(p Policy) *Sanitizer {
	s.rules = append(s.rules, presets[p]...)
	return s
}

// Sanitize returns the rewritten form of data
func (s *Sanitizer) Sanitize(data string) string {
	return string(s.Append(make([]byte, 0, len(data)), data))
}

// Append appends the rewritten form of data to dst
func (s *Sanitizer) Append(dst []byte, data string) []byte {
	if len(s.rules) == 0 {
		return append(dst, data...)
	}
next:
	for _, r := range data {
		for _, rl := range s.rules {
			if rl.filter.matches(r) {
				dst = rl.transform.apply(dst, r)
				continue next
			}
		}
		dst = utf8.AppendRune(dst, r)
	}
	return dst
}

func (f Filter) matches(r rune) bool {
	switch {
	case f&FilterNonPrintable != 0 && !strconv.IsPrint(r):
		return true
	case f&FilterControl != 0 && unicode.IsControl(r):
		return true
	case f&FilterWhitespace != 0 && unicode.IsSpace(r):
		return true
	}
	return false
}

const hexDigits = "0123456789abcdef"

func (t Transform) apply(dst []byte, r rune) []byte {
	switch t {
	case TransformStrip:
		return dst
	case TransformHexEncode:
		var enc [utf8.UTFMax]byte
		n := utf8.EncodeRune(enc[:], r)
		dst = append(dst, '<')
		for _, b := range enc[:n] {
			dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0f])
		}
		return append(dst, '>')
	case TransformJSONEscape:
		return appendEscaped(dst, r)
	}
	return utf8.AppendRune(dst, r)
}

// appendEscaped writes r with JSON string escaping
func appendEscaped(dst []byte, r rune) []byte {
	switch r {
	case '"', '\\':
		return append(dst, '\\', byte(r))
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	}
	if r < 0x20 || r == 0x7f {
		return append(dst, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&0x0f])
	}
	return utf8.AppendRune(dst, r)
}

// Mode selects how an Encoder renders values
type Mode int

const (
	ModeRaw  Mode = iota // unquoted, unsanitized
	ModeTxt              // unquoted, non-printables hex encoded
	ModeJSON             // quoted JSON string literals
)

// Encoder appends values to a line buffer in one output mode
type Encoder struct {
	mode Mode
	san  *Sanitizer
}

// NewEncoder returns an encoder using the preset policy of mode
func NewEncoder(mode Mode) *Encoder {
	san := New()
	switch mode {
	case ModeTxt:
		san.Policy(PolicyTxt)
	case ModeJSON:
		san.Policy(PolicyJSON)
	}
	return &Encoder{mode: mode, san: san}
}

// AppendString appends s. JSON mode emits a quoted literal, invalid UTF-8 becomes U+FFFD.
func (e *Encoder) AppendString(dst []byte, s string) []byte {
	if e.mode != ModeJSON {
		return e.san.Append(dst, s)
	}

	dst = append(dst, '"')
	for i := 0; i < len(s); {
		// Copy runs of plain ASCII in one append
		start := i
		for i < len(s) && plainASCII(s[i]) {
			i++
		}
		dst = append(dst, s[start:i]...)
		if i >= len(s) {
			break
		}

		if s[i] < utf8.RuneSelf {
			dst = appendEscaped(dst, rune(s[i]))
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, "�"...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}

func plainASCII(c byte) bool {
	return c >= ' ' && c < 0x7f && c != '"' && c != '\\'
}

// AppendNil appends the mode's nil literal
func (e *Encoder) AppendNil(dst []byte) []byte {
	if e.mode == ModeJSON {
		return append(dst, "null"...)
	}
	return append(dst, "<nil>"...)
}

// valueDumper renders structs, maps and pointers on a single line with stable key order
var valueDumper = &spew.ConfigState{
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// AppendValue appends a composite value rendered by spew
func (e *Encoder) AppendValue(dst []byte, v any) []byte {
	return e.AppendString(dst, valueDumper.Sprintf("%+v", v))
}
