package entities

import (
	"strconv"
	"strings"

	"github.com/samcharles93/bspconv/pkg/rbsp"
)

const (
	headerPrefix = "ENTITIES"
	modelsPrefix = "num_models="
)

// Parse parses partition text. When expectHeader is set, an optional
// "ENTITIES" line is read and validated first. Text after the first NUL is
// ignored. Input without any '{' is a valid, empty partition.
func Parse(text string, expectHeader bool) (*Partition, error) {
	if i := strings.IndexByte(text, 0); i >= 0 {
		text = text[:i]
	}

	p := &Partition{}
	if expectHeader {
		h, err := parseHeader(text)
		if err != nil {
			return nil, err
		}
		p.Header = h
	}

	pos := strings.IndexByte(text, '{')
	for pos >= 0 {
		rel := strings.IndexByte(text[pos:], '}')
		if rel < 0 {
			return nil, rbsp.FormatErrorf("entities: object at byte %d has no closing '}'", pos)
		}
		end := pos + rel

		obj, err := parseObject(text[pos+1:end], pos+1)
		if err != nil {
			return nil, err
		}
		p.Objects = append(p.Objects, obj)

		next := strings.IndexByte(text[end:], '{')
		if next < 0 {
			break
		}
		pos = end + next
	}
	return p, nil
}

func parseHeader(text string) (Header, error) {
	if !strings.HasPrefix(text, headerPrefix) {
		return Header{}, nil
	}
	entities, rest, ok, err := scanInt(text[len(headerPrefix):])
	if err != nil {
		return Header{}, err
	}
	if !ok {
		return Header{}, nil
	}

	h := Header{Form: HeaderEntities, Entities: entities}
	rest = strings.TrimLeft(rest, " \t\r\n\v\f")
	if strings.HasPrefix(rest, modelsPrefix) {
		models, _, ok, err := scanInt(rest[len(modelsPrefix):])
		if err != nil {
			return Header{}, err
		}
		if ok {
			h.Form = HeaderEntitiesModels
			h.Models = models
		}
	}

	switch h.Form {
	case HeaderEntities:
		if h.Entities != 1 {
			return Header{}, rbsp.FormatErrorf("entities: header has %d entities without num_models, expected 1", h.Entities)
		}
	case HeaderEntitiesModels:
		if h.Entities < 2 || h.Models < 0 {
			return Header{}, rbsp.FormatErrorf("entities: inconsistent header counts (entities=%d, num_models=%d)", h.Entities, h.Models)
		}
	}
	return h, nil
}

// scanInt reads an optionally signed decimal after optional leading spaces.
func scanInt(s string) (n int, rest string, ok bool, err error) {
	s = strings.TrimLeft(s, " \t\r\n\v\f")
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, s, false, nil
	}
	n, err = strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, false, rbsp.FormatErrorf("entities: bad header count %q", s[:i])
	}
	return n, s[i:], true, nil
}

// parseObject reads `"key" "value"` pairs from the text between braces.
// base is the byte offset of body within the partition, for diagnostics.
func parseObject(body string, base int) (Object, error) {
	var obj Object
	for {
		key, n, ok, err := nextQuoted(body, base)
		if err != nil {
			return Object{}, err
		}
		if !ok {
			return obj, nil
		}
		body, base = body[n:], base+n

		value, n, ok, err := nextQuoted(body, base)
		if err != nil {
			return Object{}, err
		}
		if !ok {
			return Object{}, rbsp.FormatErrorf("entities: key %q at byte %d has no value", key, base)
		}
		body, base = body[n:], base+n

		obj.Fields = append(obj.Fields, Field{Key: key, Value: value})
	}
}

// nextQuoted returns the next quoted token in s and the number of bytes
// consumed through its closing quote.
func nextQuoted(s string, base int) (string, int, bool, error) {
	open := strings.IndexByte(s, '"')
	if open < 0 {
		return "", 0, false, nil
	}
	closing := strings.IndexByte(s[open+1:], '"')
	if closing < 0 {
		return "", 0, false, rbsp.FormatErrorf("entities: unterminated quoted string at byte %d", base+open)
	}
	end := open + 1 + closing
	return s[open+1 : end], end + 1, true, nil
}
