package assembler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Field matchers for the semi-stable annotation text formats. These are
// deliberately small and permissive: annotation wording is an external
// contract that drifts across decoder versions, and a miss must mean
// "skip", never "fail".

// isHexByte reports whether s is exactly two hex digits.
func isHexByte(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// parenHex extracts the hex digits of a parenthesized "(0x...)" group,
// as used by identifier annotations like "Identifier: 914 (0x392)".
func parenHex(s string) (string, bool) {
	open := strings.LastIndex(s, "(")
	if open == -1 {
		return "", false
	}
	close := strings.Index(s[open:], ")")
	if close == -1 {
		return "", false
	}
	inner := s[open+1 : open+close]
	digits, found := strings.CutPrefix(inner, "0x")
	if !found {
		digits, found = strings.CutPrefix(inner, "0X")
	}
	if !found || digits == "" {
		return "", false
	}
	for _, c := range digits {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", false
		}
	}
	return strings.ToUpper(digits), true
}

// quoted extracts the text inside the first single- or double-quoted
// span, as used by command annotations like "ROM command: 0x33 'Read ROM'".
func quoted(s string) (string, bool) {
	for _, q := range []byte{'\'', '"'} {
		open := strings.IndexByte(s, q)
		if open == -1 {
			continue
		}
		close := strings.IndexByte(s[open+1:], q)
		if close == -1 {
			continue
		}
		return s[open+1 : open+1+close], true
	}
	return "", false
}

// hexWords returns every "0x"-prefixed hex token in s, uppercased and
// without the prefix, in order of appearance.
func hexWords(s string) []string {
	var out []string
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';'
	})
	for _, f := range fields {
		digits, found := strings.CutPrefix(f, "0x")
		if !found {
			continue
		}
		if digits == "" {
			continue
		}
		valid := true
		for _, c := range digits {
			if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
				valid = false
				break
			}
		}
		if valid {
			out = append(out, strings.ToUpper(digits))
		}
	}
	return out
}

// firstWord returns the text before the first space, or all of s when
// there is none.
func firstWord(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// afterColon returns the text after the first ": " in s, trimmed.
func afterColon(s string) string {
	_, value, found := strings.Cut(s, ": ")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// stripHexPrefix drops a leading "0x"/"0X" and uppercases the rest.
func stripHexPrefix(s string) string {
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return strings.ToUpper(s)
}

// twoDigits renders a decimal field value zero-padded to two places,
// passing unparsable text through untouched.
func twoDigits(s string) string {
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%02d", n)
}

// freqCounter is a multiset of observed bus addresses or ROM codes,
// used for the one-line "devices seen" summary.
type freqCounter struct {
	counts map[string]int
	order  []string
}

func newFreqCounter() *freqCounter {
	return &freqCounter{counts: map[string]int{}}
}

func (f *freqCounter) add(key string) {
	if _, seen := f.counts[key]; !seen {
		f.order = append(f.order, key)
	}
	f.counts[key]++
}

// byFrequency lists keys by descending count, ties broken by first-seen
// order.
func (f *freqCounter) byFrequency() []string {
	keys := make([]string, len(f.order))
	copy(keys, f.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return f.counts[keys[i]] > f.counts[keys[j]]
	})
	return keys
}
