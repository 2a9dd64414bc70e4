// Package arb reads and writes Flutter ARB localization documents.
//
// Documents keep their top-level key order and the exact bytes of every value
// that is not replaced, so rewriting one key leaves the rest of the file
// semantically untouched.
package arb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"arbfix/internal/domain"
	"arbfix/internal/ports/output"
)

var _ output.LocaleDocument = (*Document)(nil)

const indent = "  "

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is an ordered JSON object whose values are kept raw.
type Document struct {
	keys            []string
	values          map[string]json.RawMessage
	trailingNewline bool
}

// Parse decodes data as a top-level JSON object. Duplicate keys keep the
// position of their first occurrence and the value of their last.
func Parse(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, domain.ErrNotAnObject
	}

	doc := &Document{values: make(map[string]json.RawMessage)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parse: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse %q: %w", key, err)
		}
		if _, dup := doc.values[key]; !dup {
			doc.keys = append(doc.keys, key)
		}
		doc.values[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parse: trailing data after document")
	}

	doc.trailingNewline = bytes.HasSuffix(bytes.TrimRight(data, " \t\r"), []byte("\n"))
	return doc, nil
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Raw returns the raw JSON of the value at key.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	v, ok := d.values[key]
	return v, ok
}

func (d *Document) Lookup(key string) (string, bool) {
	raw, ok := d.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

func (d *Document) Set(key, value string) error {
	if _, ok := d.values[key]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrKeyNotFound, key)
	}
	raw, err := marshalString(value)
	if err != nil {
		return err
	}
	d.values[key] = raw
	return nil
}

// Encode renders the document with two-space indentation. Non-ASCII and HTML
// characters are written as-is.
func (d *Document) Encode() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			compact.WriteByte(',')
		}
		kb, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		compact.Write(kb)
		compact.WriteByte(':')
		compact.Write(d.values[k])
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if d.trailingNewline {
		out.WriteByte('\n')
	}
	return out.Bytes(), nil
}

func marshalString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
