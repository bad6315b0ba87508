package workout

import (
	"strconv"
	"strings"
	"unicode"
)

// MaxSetCount is the most set rows a session builds for one exercise.
const MaxSetCount = 100

// ParseSetCount turns the target "sets" text of an exercise into the number of
// set rows a session starts with. Like parseInt it reads the leading integer and
// ignores trailing text ("3 sets" -> 3). Anything unparseable or below 1 gives 1.
func ParseSetCount(text string) int {
	n, ok := leadingInt(text)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// ParseWeight reads the leading decimal number of a weight field ("62.5kg" -> 62.5,
// "1e3" -> 1000). An exponent only counts when digits follow it ("5e" -> 5).
// Empty or non-numeric text counts as 0.
func ParseWeight(text string) float64 {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := mantissaEnd(s)
	if end == 0 {
		return 0
	}
	end += exponentLen(s[end:])
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// mantissaEnd returns the length of the signed decimal prefix of s, or 0 when
// that prefix holds no digit.
func mantissaEnd(s string) int {
	end := 0
	seenDigit, seenDot := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case (c == '+' || c == '-') && i == 0:
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		default:
			if !seenDigit {
				return 0
			}
			return end
		}
		end = i + 1
	}
	if !seenDigit {
		return 0
	}
	return end
}

// exponentLen returns the length of a leading "e[+-]digits" in s, or 0.
func exponentLen(s string) int {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	i := 1
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0
	}
	return i
}

func leadingInt(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := 0
	for i, r := range s {
		if (r == '+' || r == '-') && i == 0 {
			end = 1
			continue
		}
		if r < '0' || r > '9' {
			break
		}
		end = i + 1
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
