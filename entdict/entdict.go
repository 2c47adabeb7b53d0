// SPDX-License-Identifier: GPL-2.0-or-later

// Package entdict parses and serializes the BSP entity lump: an ordered
// list of "{ key value ... }" blocks, each an ordered string->string
// dictionary. The first dict is always the worldspawn entity.
package entdict

import (
	"fmt"
	"strings"

	"radlight/conlog"
)

// MaxKeyLen and MaxValueLen are the parser's fatal limits on key and
// value length, matching the classic entity-lump grammar.
const (
	MaxKeyLen   = 31
	MaxValueLen = 1023
)

// Pair is one key/value entry, kept as a slice element (not a map) so
// insertion order survives a parse/serialize round trip.
type Pair struct {
	Key   string
	Value string
}

// Dict is one entity's ordered key/value list.
type Dict struct {
	Pairs []Pair
}

// Get returns the value for key and whether it was present.
func (d *Dict) Get(key string) (string, bool) {
	for _, p := range d.Pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Set overwrites the first existing pair with this key, or appends a new
// one, preserving the dict's insertion order for new keys.
func (d *Dict) Set(key, value string) {
	for i := range d.Pairs {
		if d.Pairs[i].Key == key {
			d.Pairs[i].Value = value
			return
		}
	}
	d.Pairs = append(d.Pairs, Pair{Key: key, Value: value})
}

// Rename changes the first pair named from to named to, in place, doing
// nothing if from isn't present. Used by LoadEntities to migrate the
// legacy lightmap_scale key.
func (d *Dict) Rename(from, to string) {
	for i := range d.Pairs {
		if d.Pairs[i].Key == from {
			d.Pairs[i].Key = to
			return
		}
	}
}

// ClassName is a shorthand for Get("classname").
func (d *Dict) ClassName() string {
	v, _ := d.Get("classname")
	return v
}

// tokenizer walks an entity lump's source text, whitespace-separated with
// quoted strings and single-character '{'/'}' tokens.
type tokenizer struct {
	src []byte
	pos int
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			t.pos++
			continue
		}
		// ';'-prefixed comment lines, matching the source map format.
		if c == ';' {
			for t.pos < len(t.src) && t.src[t.pos] != '\n' {
				t.pos++
			}
			continue
		}
		break
	}
}

// next returns the next token and whether one was found. '{' and '}' are
// each returned as single-character tokens; quoted strings have their
// surrounding quotes stripped (no escape handling at this layer: escape
// decoding is a separate post-parse pass, per DecodeEscapes).
func (t *tokenizer) next() (string, bool) {
	t.skipWhitespace()
	if t.pos >= len(t.src) {
		return "", false
	}

	c := t.src[t.pos]
	if c == '{' || c == '}' {
		t.pos++
		return string(c), true
	}

	if c == '"' {
		start := t.pos + 1
		end := start
		for end < len(t.src) && t.src[end] != '"' {
			end++
		}
		if end >= len(t.src) {
			conlog.Fatalf("entdict: unterminated quoted string")
		}
		t.pos = end + 1
		return string(t.src[start:end]), true
	}

	start := t.pos
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '{' || c == '}' || c == '"' {
			break
		}
		t.pos++
	}
	return string(t.src[start:t.pos]), true
}

// Parse tokenizes and parses an entity lump into its ordered list of
// dicts. Key length over MaxKeyLen, value length over MaxValueLen, and
// EOF inside an open block are all fatal, matching the original
// compiler's "this is corrupt input, stop" posture for entity data.
func Parse(src []byte) []Dict {
	t := &tokenizer{src: src}
	var dicts []Dict

	for {
		tok, ok := t.next()
		if !ok {
			return dicts
		}
		if tok != "{" {
			conlog.Fatalf("entdict: expected '{', got %q", tok)
		}

		var d Dict
		for {
			tok, ok := t.next()
			if !ok {
				conlog.Fatalf("entdict: EOF inside entity block")
			}
			if tok == "}" {
				break
			}

			key := tok
			if len(key) > MaxKeyLen {
				conlog.Fatalf("entdict: key %q exceeds %d characters", key, MaxKeyLen)
			}

			value, ok := t.next()
			if !ok || value == "{" || value == "}" {
				conlog.Fatalf("entdict: missing value for key %q", key)
			}
			if len(value) > MaxValueLen {
				conlog.Fatalf("entdict: value for key %q exceeds %d characters", key, MaxValueLen)
			}

			d.Pairs = append(d.Pairs, Pair{Key: key, Value: value})
		}
		dicts = append(dicts, d)
	}
}

// Write serializes dicts back to entity-lump text: one "{"-terminated-
// with-"}" block per dict, one `"k" "v"` pair per line, a trailing
// newline after every "}". The caller is responsible for the lump's NUL
// terminator (bspfile's File.Save appends one).
func Write(dicts []Dict) string {
	var b strings.Builder
	for _, d := range dicts {
		b.WriteString("{\n")
		for _, p := range d.Pairs {
			fmt.Fprintf(&b, "\"%s\" \"%s\"\n", p.Key, p.Value)
		}
		b.WriteString("}\n")
	}
	return b.String()
}
