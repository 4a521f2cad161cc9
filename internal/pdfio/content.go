package pdfio

import (
	"strconv"
	"strings"
	"unicode"
)

// ScanContent parses a decoded page content stream and reconstructs text
// lines with the font size and vertical position in effect when each line
// was shown. It understands the common text operators (BT/ET, Tf, Tm,
// Td/TD, T*, Tj, TJ, ', ") and ignores everything else. CID-encoded hex
// strings do not decode to readable text and are skipped.
func ScanContent(data []byte) []Line {
	s := scanner{}
	s.run(data)
	s.flush()
	return s.lines
}

type scanner struct {
	lines []Line

	// text state
	fontSize float64
	tmScale  float64
	y        float64
	bold     bool

	// current line accumulator
	buf      strings.Builder
	lineSize float64
	lineY    float64
	lineBold bool

	// pending operands
	nums  []float64
	strs  []string
	names []string
}

func (s *scanner) run(data []byte) {
	s.tmScale = 1
	i := 0
	for i < len(data) {
		c := data[i]
		switch {
		case c == '(':
			str, next := parseLiteralString(data, i)
			s.strs = append(s.strs, str)
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '<':
			// Hex string: usually CID-encoded, not recoverable here.
			for i < len(data) && data[i] != '>' {
				i++
			}
			i++
			s.strs = append(s.strs, "")
		case c == '/':
			j := i + 1
			for j < len(data) && !isDelim(data[j]) {
				j++
			}
			s.names = append(s.names, string(data[i+1:j]))
			i = j
		case c == '[' || c == ']' || c == '{' || c == '}' || c == '>':
			i++
		case c <= ' ':
			i++
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(data) && !isDelim(data[j]) {
				j++
			}
			if f, err := strconv.ParseFloat(string(data[i:j]), 64); err == nil {
				s.nums = append(s.nums, f)
			}
			i = j
		default:
			j := i + 1
			for j < len(data) && !isDelim(data[j]) {
				j++
			}
			s.operator(string(data[i:j]))
			i = j
		}
	}
}

// isDelim reports whether b terminates a bare token.
func isDelim(b byte) bool {
	return b <= ' ' || b == '(' || b == ')' || b == '<' || b == '>' ||
		b == '[' || b == ']' || b == '{' || b == '}' || b == '/' || b == '%'
}

func (s *scanner) operator(op string) {
	switch op {
	case "BT":
		// BT resets the text matrix to identity.
		s.tmScale = 1
		s.newLine(0)
	case "ET":
		s.flush()
	case "Tf":
		if len(s.nums) > 0 {
			s.fontSize = s.nums[len(s.nums)-1]
		}
		if len(s.names) > 0 {
			name := s.names[len(s.names)-1]
			s.bold = strings.Contains(strings.ToLower(name), "bold")
		}
	case "Tm":
		if len(s.nums) >= 6 {
			n := s.nums[len(s.nums)-6:]
			if sc := n[3]; sc != 0 {
				if sc < 0 {
					sc = -sc
				}
				s.tmScale = sc
			}
			if n[5] != s.y {
				s.newLine(n[5])
			}
		}
	case "Td", "TD":
		if len(s.nums) >= 2 {
			ty := s.nums[len(s.nums)-1]
			if ty > 0.1 || ty < -0.1 {
				s.newLine(s.y + ty)
			} else {
				s.buf.WriteByte(' ')
			}
		}
	case "T*":
		s.newLine(s.y)
	case "'", "\"":
		s.newLine(s.y)
		s.showPending()
	case "Tj", "TJ":
		s.showPending()
	}
	s.nums = s.nums[:0]
	s.strs = s.strs[:0]
	s.names = s.names[:0]
}

func (s *scanner) showPending() {
	if s.buf.Len() == 0 {
		s.lineSize = s.effectiveSize()
		s.lineY = s.y
		s.lineBold = s.bold
	}
	for _, str := range s.strs {
		s.buf.WriteString(str)
	}
}

func (s *scanner) effectiveSize() float64 {
	if s.tmScale > 0 {
		return s.fontSize * s.tmScale
	}
	return s.fontSize
}

func (s *scanner) newLine(y float64) {
	s.flush()
	s.y = y
}

func (s *scanner) flush() {
	text := cleanText(s.buf.String())
	s.buf.Reset()
	if text == "" {
		return
	}
	s.lines = append(s.lines, Line{
		Text:     text,
		FontSize: s.lineSize,
		Y:        s.lineY,
		Bold:     s.lineBold,
	})
}

// parseLiteralString decodes a PDF literal string starting at the opening
// parenthesis, handling nesting and backslash escapes including octal.
// It returns the decoded text and the index just past the closing
// parenthesis.
func parseLiteralString(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 1
	i := start + 1
	for i < len(data) && depth > 0 {
		c := data[i]
		switch c {
		case '\\':
			if i+1 >= len(data) {
				i++
				continue
			}
			i++
			switch e := data[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// ignored
			case '(', ')', '\\':
				sb.WriteByte(e)
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(e)
				}
			}
			i++
		case '(':
			depth++
			sb.WriteByte(c)
			i++
		case ')':
			depth--
			if depth > 0 {
				sb.WriteByte(c)
			}
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), i
}

// cleanText collapses whitespace and drops non-printable runes.
func cleanText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
