// Package textgrid reads Praat TextGrid annotation files.
//
// Both the long ("key = value") and short text formats are supported; the
// two carry the same values in the same order, so a single value-stream
// parser handles either. Interval tiers are fully materialized; point
// tiers (TextTier) are parsed structurally but carry no intervals.
package textgrid

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Interval is one labeled time span [Min, Max) within a tier.
type Interval struct {
	Min  float64
	Max  float64
	Mark string
}

// Duration returns the interval length in seconds.
func (i Interval) Duration() float64 { return i.Max - i.Min }

// Tier is one named track of intervals. Point tiers have a Class of
// "TextTier" and an empty Intervals slice.
type Tier struct {
	Name      string
	Class     string
	Min       float64
	Max       float64
	Intervals []Interval
}

// TextGrid is a parsed annotation file spanning [Min, Max).
type TextGrid struct {
	Min   float64
	Max   float64
	Tiers []Tier
}

// ParseError describes a malformed or unsupported TextGrid file.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("textgrid %s:%d: %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("textgrid %s: %s", e.Path, e.Msg)
}

// ReadFile parses the TextGrid at path.
func ReadFile(path string) (*TextGrid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), path)
}

// Parse parses TextGrid content. The path is used in error messages only.
func Parse(content, path string) (*TextGrid, error) {
	p := &parser{lines: splitLines(content), path: path}

	fileType, err := p.nextString()
	if err != nil {
		return nil, err
	}
	if fileType != "ooTextFile" {
		return nil, p.errorf("unsupported file type %q", fileType)
	}
	objClass, err := p.nextString()
	if err != nil {
		return nil, err
	}
	if objClass != "TextGrid" {
		return nil, p.errorf("unsupported object class %q", objClass)
	}

	tg := &TextGrid{}
	if tg.Min, err = p.nextNumber(); err != nil {
		return nil, err
	}
	if tg.Max, err = p.nextNumber(); err != nil {
		return nil, err
	}
	hasTiers, err := p.nextFlag()
	if err != nil {
		return nil, err
	}
	if !hasTiers {
		return tg, nil
	}
	size, err := p.nextNumber()
	if err != nil {
		return nil, err
	}
	n := int(size)
	if n < 0 {
		return nil, p.errorf("negative tier count %d", n)
	}

	for ti := 0; ti < n; ti++ {
		tier, err := p.parseTier()
		if err != nil {
			return nil, err
		}
		tg.Tiers = append(tg.Tiers, tier)
	}
	return tg, nil
}

func (p *parser) parseTier() (Tier, error) {
	var tier Tier
	var err error
	if tier.Class, err = p.nextString(); err != nil {
		return tier, err
	}
	if tier.Name, err = p.nextString(); err != nil {
		return tier, err
	}
	if tier.Min, err = p.nextNumber(); err != nil {
		return tier, err
	}
	if tier.Max, err = p.nextNumber(); err != nil {
		return tier, err
	}
	count, err := p.nextNumber()
	if err != nil {
		return tier, err
	}
	n := int(count)
	if n < 0 {
		return tier, p.errorf("tier %q: negative interval count %d", tier.Name, n)
	}

	switch tier.Class {
	case "IntervalTier":
		for i := 0; i < n; i++ {
			var iv Interval
			if iv.Min, err = p.nextNumber(); err != nil {
				return tier, err
			}
			if iv.Max, err = p.nextNumber(); err != nil {
				return tier, err
			}
			if iv.Mark, err = p.nextString(); err != nil {
				return tier, err
			}
			if iv.Max < iv.Min {
				return tier, p.errorf("tier %q: interval %d ends before it starts (%g > %g)",
					tier.Name, i+1, iv.Min, iv.Max)
			}
			tier.Intervals = append(tier.Intervals, iv)
		}
	case "TextTier":
		// Point tier: consume number/mark pairs, keep none.
		for i := 0; i < n; i++ {
			if _, err = p.nextNumber(); err != nil {
				return tier, err
			}
			if _, err = p.nextString(); err != nil {
				return tier, err
			}
		}
	default:
		return tier, p.errorf("unsupported tier class %q", tier.Class)
	}
	return tier, nil
}

// parser walks the file as a stream of values. Long-format decoration
// (keys, "item [1]:" headers) is stripped per line; what remains is the
// same value sequence the short format spells out bare.
type parser struct {
	lines []string
	path  string
	idx   int // next line to consume
	lastN int // line the most recent value came from
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Path: p.path, Line: p.lastN, Msg: fmt.Sprintf(format, args...)}
}

// nextValue returns the raw text of the next value and the line it starts
// on. Structural lines are skipped; "key = value" lines yield the value.
func (p *parser) nextValue() (string, int, error) {
	for p.idx < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.idx])
		n := p.idx + 1
		p.idx++
		if line == "" {
			continue
		}
		// quoted short-format values may themselves contain '=' or brackets
		if strings.HasPrefix(line, `"`) {
			p.lastN = n
			return line, n, nil
		}
		if isStructural(line) {
			continue
		}
		if i := strings.Index(line, "="); i >= 0 {
			line = strings.TrimSpace(line[i+1:])
			if line == "" {
				continue
			}
		} else if strings.HasPrefix(line, "tiers?") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "tiers?"))
		}
		p.lastN = n
		return line, n, nil
	}
	p.lastN = len(p.lines)
	return "", p.lastN, &ParseError{Path: p.path, Line: p.lastN, Msg: "unexpected end of file"}
}

// isStructural reports whether a long-format line is pure decoration,
// e.g. "item []:" or "intervals [3]:".
func isStructural(line string) bool {
	if !strings.HasSuffix(line, "]:") {
		return false
	}
	open := strings.Index(line, "[")
	if open < 0 {
		return false
	}
	inner := line[open+1 : len(line)-2]
	if inner == "" {
		return true
	}
	_, err := strconv.Atoi(inner)
	return err == nil
}

func (p *parser) nextNumber() (float64, error) {
	v, n, err := p.nextValue()
	if err != nil {
		return 0, err
	}
	// Praat writes plain decimals; tolerate trailing junk like "sec".
	if i := strings.IndexAny(v, " \t"); i >= 0 {
		v = v[:i]
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Path: p.path, Line: n, Msg: fmt.Sprintf("expected number, got %q", v)}
	}
	return f, nil
}

func (p *parser) nextFlag() (bool, error) {
	v, n, err := p.nextValue()
	if err != nil {
		return false, err
	}
	switch {
	case strings.Contains(v, "<exists>"):
		return true, nil
	case strings.Contains(v, "<absent>"):
		return false, nil
	}
	return false, &ParseError{Path: p.path, Line: n, Msg: fmt.Sprintf("expected <exists> or <absent>, got %q", v)}
}

// nextString parses a double-quoted Praat string. A doubled quote inside
// the string stands for one literal quote; unterminated strings continue
// onto following raw lines.
func (p *parser) nextString() (string, error) {
	v, n, err := p.nextValue()
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(v, `"`) {
		return "", &ParseError{Path: p.path, Line: n, Msg: fmt.Sprintf("expected string, got %q", v)}
	}
	var b strings.Builder
	s := v[1:]
	for {
		i := 0
		for i < len(s) {
			if s[i] != '"' {
				b.WriteByte(s[i])
				i++
				continue
			}
			if i+1 < len(s) && s[i+1] == '"' {
				b.WriteByte('"')
				i += 2
				continue
			}
			// closing quote; anything after it on the line is dropped
			return b.String(), nil
		}
		// string continues on the next raw line
		if p.idx >= len(p.lines) {
			return "", &ParseError{Path: p.path, Line: n, Msg: "unterminated string"}
		}
		b.WriteByte('\n')
		s = p.lines[p.idx]
		p.idx++
	}
}
