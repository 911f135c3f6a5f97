// Package asdf decodes ASDF (ASCII Squeezed Difference Form) encoded
// numeric lines, the packed representation JCAMP-DX uses for XYDATA,
// RADATA and the Y-axis columns of NTUPLES PAGE blocks. It knows
// nothing about LDRs, blocks, or files; it turns one line of encoded
// text into a slice of float64 values. This mirrors the way the
// teacher's internal/bitio package decodes one VP8 arithmetic-coded
// bit stream without any awareness of the RIFF container around it.
package asdf

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// tokenType classifies one token of an encoded line.
type tokenType int

const (
	tokenAffn tokenType = iota
	tokenMissing
	tokenSqz
	tokenDif
	tokenDup
)

const (
	positiveSqzDigits = "@ABCDEFGHI"
	negativeSqzDigits = "abcdefghi"
	positiveDifDigits = "%JKLMNOPQR"
	negativeDifDigits = "jklmnopqr"
	positiveDupDigits = "STUVWXYZs"
)

// exponentLookahead matches a short window starting at a candidate E/e
// (or, for +/-, at the character before it) that looks like an exponent marker
// ("E+12", "e-3;", ...) rather than an SQZ digit. Applying it to a
// 6-byte window is the same heuristic the original decoder uses to
// disambiguate the two uses of those characters.
var (
	exponentLookahead    = regexp.MustCompile(`^[eE][+-]?\d{1,3}[;,\s].*`)
	exponentLookaheadEnd = regexp.MustCompile(`^[eE][+-]?\d{1,3}[;,\s]$`)
)

// DecodeLine parses one ASDF-encoded line into its sequence of decoded
// values, in order. prevDif and prev optionally seed the decoder with
// the type and value of the token that logically precedes the line
// (the previous line's trailing token), which lets a line legally open
// with a DUP or DIF token continuing the previous line's sequence; pass
// prev == nil to require every line to open with a plain value, as the
// format most commonly does. lastIsDif reports whether the final token
// processed was DIF-encoded, which callers use to decide whether the
// line's last value may serve as the next line's leading checksum.
func DecodeLine(line string, prevDif bool, prev *float64) (values []float64, lastIsDif bool, err error) {
	var (
		havePrev       bool
		lastValue      float64 // equivalent to yValues.back()
		prevTokenValue float64 // equivalent to previousTokenValue
		prevTokenType  = tokenAffn
	)
	if prev != nil {
		havePrev = true
		lastValue = *prev
		prevTokenValue = *prev
		if prevDif {
			prevTokenType = tokenDif
		}
	}

	pos := 0
	for {
		tok, ok, nextPos, terr := nextToken(line, pos)
		if terr != nil {
			return nil, false, terr
		}
		if !ok {
			break
		}
		pos = nextPos

		kind, payload := classify(tok)

		if (kind == tokenDup || kind == tokenDif) && !havePrev {
			name := "DIF"
			if kind == tokenDup {
				name = "DUP"
			}
			return nil, false, fmt.Errorf("asdf: %s token without preceding token in line: %s", name, line)
		}
		if kind == tokenDup && prevTokenType == tokenDup {
			return nil, false, fmt.Errorf("asdf: DUP token with preceding DUP token in line: %s", line)
		}

		switch kind {
		case tokenMissing:
			values = append(values, math.NaN())
			lastValue, havePrev = math.NaN(), true
			prevTokenValue = math.NaN()

		case tokenDup:
			repeats, perr := strconv.ParseInt(payload, 10, 64)
			if perr != nil {
				return nil, false, fmt.Errorf("asdf: illegal DUP count %q in line: %s", payload, line)
			}
			for i := int64(0); i < repeats-1; i++ {
				next := lastValue
				if prevTokenType == tokenDif {
					next = lastValue + prevTokenValue
				}
				values = append(values, next)
				lastValue = next
			}
			prevTokenValue = float64(repeats)

		default:
			raw, perr := strconv.ParseFloat(payload, 64)
			if perr != nil {
				return nil, false, fmt.Errorf("asdf: illegal numeric token %q in line: %s", payload, line)
			}
			value := raw
			if kind == tokenDif {
				if prevTokenType == tokenMissing {
					return nil, false, fmt.Errorf("asdf: DIF token with preceding ? token in line: %s", line)
				}
				value = lastValue + raw
			}
			values = append(values, value)
			lastValue, havePrev = value, true
			// previousTokenValue tracks the token's own parsed value
			// (the delta, for DIF), not the absolute value it produced;
			// a following DUP replays that delta, not the last value.
			prevTokenValue = raw
		}
		prevTokenType = kind
		lastIsDif = kind == tokenDif
	}

	return values, lastIsDif, nil
}

// classify determines a token's type from its leading character and
// returns the payload to parse: for AFFN/Missing the token unchanged,
// for SQZ/DIF/DUP the leading char's signed digit value concatenated
// with the remainder of the token, exactly as the original decoder
// reconstructs a parseable number or count from the packed digit.
func classify(token string) (tokenType, string) {
	c := token[0]
	if c == '?' {
		return tokenMissing, token
	}
	if d, ok := digitValue(positiveSqzDigits, negativeSqzDigits, c); ok {
		return tokenSqz, strconv.Itoa(d) + token[1:]
	}
	if d, ok := digitValue(positiveDifDigits, negativeDifDigits, c); ok {
		return tokenDif, strconv.Itoa(d) + token[1:]
	}
	if pos := strings.IndexByte(positiveDupDigits, c); pos != -1 {
		return tokenDup, strconv.Itoa(pos+1) + token[1:]
	}
	return tokenAffn, token
}

// digitValue looks c up in a positive/negative digit-letter pair,
// returning the signed value the letter encodes. Positive letters map
// to their index (0-based); negative letters map to -(index+1).
func digitValue(positive, negative string, c byte) (int, bool) {
	if pos := strings.IndexByte(positive, c); pos != -1 {
		return pos, true
	}
	if pos := strings.IndexByte(negative, c); pos != -1 {
		return -(pos + 1), true
	}
	return 0, false
}

// nextToken scans line starting at pos, skipping delimiters, and
// returns the next token plus the position just past it. ok is false
// once the line is exhausted.
func nextToken(line string, pos int) (token string, ok bool, next int, err error) {
	for pos < len(line) && isDelimiter(line, pos) {
		pos++
	}
	if pos >= len(line) {
		return "", false, pos, nil
	}
	if !isTokenStart(line, pos) {
		return "", false, pos, fmt.Errorf("asdf: illegal sequence in line %q at position %d", line, pos)
	}
	start := pos
	pos++
	for pos < len(line) && !isDelimiter(line, pos) && !isTokenStart(line, pos) {
		pos++
	}
	return line[start:pos], true, pos, nil
}

func isDelimiter(line string, index int) bool {
	if index >= len(line) {
		return true
	}
	c := line[index]
	return c == ' ' || c == '\t' || c == ';' || c == ','
}

func isTokenStart(line string, index int) bool {
	if index >= len(line) {
		return false
	}
	c := line[index]

	if (c >= '0' && c <= '9' || c == '.') && (index == 0 || isDelimiter(line, index-1)) {
		return true
	}
	if c == 'E' || c == 'e' {
		end := index + 6
		if end > len(line) {
			end = len(line)
		}
		window := line[index:end]
		return !exponentLookahead.MatchString(window) && !exponentLookaheadEnd.MatchString(window)
	}
	if c == '+' || c == '-' {
		if index == 0 {
			return true
		}
		start := index - 1
		end := start + 6
		if end > len(line) {
			end = len(line)
		}
		window := line[start:end]
		return !exponentLookahead.MatchString(window) && !exponentLookaheadEnd.MatchString(window)
	}
	if _, ok := digitValue(positiveSqzDigits, negativeSqzDigits, c); ok {
		return true
	}
	if _, ok := digitValue(positiveDifDigits, negativeDifDigits, c); ok {
		return true
	}
	if strings.IndexByte(positiveDupDigits, c) != -1 {
		return true
	}
	return c == '?'
}
