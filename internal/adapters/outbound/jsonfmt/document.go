package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/monolint/monolint/internal/domain"
)

var _ domain.ManifestDocument = (*Document)(nil)

// ErrNotObject is returned when a path crosses a value that is not an object.
var ErrNotObject = errors.New("not a JSON object")

// Document is a JSON object held in compact form for editing. Bytes
// re-applies the style detected at parse time.
type Document struct {
	data  []byte
	style Style
	// source holds the original text of each top-level value of a
	// multi-line document, keyed by member name.
	source map[string]sourceValue
}

type sourceValue struct {
	compact []byte
	text    []byte
}

// Parse validates src and detects its style.
func Parse(src []byte) (*Document, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, src); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, t, _, err := jsonparser.Get(buf.Bytes()); err != nil || t != jsonparser.Object {
		return nil, fmt.Errorf("document root: %w", ErrNotObject)
	}
	doc := &Document{data: buf.Bytes(), style: DetectStyle(src)}
	if doc.style.Multiline() {
		doc.source = topLevelSource(bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n")))
	}
	return doc, nil
}

func topLevelSource(src []byte) map[string]sourceValue {
	out := make(map[string]sourceValue)
	_ = jsonparser.ObjectEach(src, func(key, value []byte, t jsonparser.ValueType, end int) error {
		n := len(value)
		if t == jsonparser.String {
			n += 2
		}
		text := src[end-n : end]
		var buf bytes.Buffer
		if err := json.Compact(&buf, text); err == nil {
			out[string(key)] = sourceValue{compact: buf.Bytes(), text: text}
		}
		return nil
	})
	return out
}

// New creates a document holding an empty object in the given style.
func New(style Style) *Document {
	return &Document{data: []byte("{}"), style: style}
}

func (d *Document) Style() Style { return d.style }

// Bytes serializes the document in its original style. Top-level members
// whose value is unchanged keep their original text.
func (d *Document) Bytes() ([]byte, error) {
	out := d.data
	if d.style.Multiline() {
		var err error
		if out, err = d.indent(); err != nil {
			return nil, err
		}
		if d.style.Newline != "\n" {
			out = bytes.ReplaceAll(out, []byte("\n"), []byte(d.style.Newline))
		}
	}
	if d.style.FinalNewline {
		out = append(out, d.style.Newline...)
	}
	return out, nil
}

func (d *Document) indent() ([]byte, error) {
	members, err := splitObject(d.data)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []byte("{}"), nil
	}
	unit := d.style.Indent
	var b bytes.Buffer
	b.WriteString("{\n")
	for i, m := range members {
		b.WriteString(unit)
		b.Write(m.rawKey)
		b.WriteString(": ")
		if orig, ok := d.source[m.key]; ok && bytes.Equal(orig.compact, m.raw) {
			b.Write(orig.text)
		} else if err := json.Indent(&b, m.raw, unit, unit); err != nil {
			return nil, fmt.Errorf("indenting JSON: %w", err)
		}
		if i < len(members)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (d *Document) lookup(path []string) ([]byte, jsonparser.ValueType) {
	value, t, _, err := jsonparser.Get(d.data, path...)
	if err != nil {
		return nil, jsonparser.NotExist
	}
	return value, t
}

func (d *Document) Has(path ...string) bool {
	_, t := d.lookup(path)
	return t != jsonparser.NotExist
}

func (d *Document) IsObject(path ...string) bool {
	_, t := d.lookup(path)
	return t == jsonparser.Object
}

func (d *Document) Len(path ...string) int {
	value, t := d.lookup(path)
	n := 0
	switch t {
	case jsonparser.Object:
		_ = jsonparser.ObjectEach(value, func(_, _ []byte, _ jsonparser.ValueType, _ int) error {
			n++
			return nil
		})
	case jsonparser.Array:
		_, _ = jsonparser.ArrayEach(value, func(_ []byte, _ jsonparser.ValueType, _ int, _ error) {
			n++
		})
	}
	return n
}

func (d *Document) GetString(path ...string) (string, bool) {
	s, err := jsonparser.GetString(d.data, path...)
	if err != nil {
		return "", false
	}
	return s, true
}

func (d *Document) Strings(path ...string) []string {
	value, t := d.lookup(path)
	if t != jsonparser.Array {
		return nil
	}
	var out []string
	_, _ = jsonparser.ArrayEach(value, func(v []byte, vt jsonparser.ValueType, _ int, _ error) {
		if vt != jsonparser.String {
			return
		}
		if s, err := jsonparser.ParseString(v); err == nil {
			out = append(out, s)
		}
	})
	return out
}

func (d *Document) Entries(path ...string) []domain.Entry {
	value, t := d.lookup(path)
	if t != jsonparser.Object {
		return nil
	}
	members, err := splitObject(value)
	if err != nil {
		return nil
	}
	var out []domain.Entry
	for _, m := range members {
		if m.kind != jsonparser.String {
			continue
		}
		var s string
		if err := json.Unmarshal(m.raw, &s); err == nil {
			out = append(out, domain.Entry{Key: m.key, Value: s})
		}
	}
	return out
}

func (d *Document) SetBool(value bool, path ...string) error {
	raw := []byte("false")
	if value {
		raw = []byte("true")
	}
	return d.setRaw(raw, path)
}

func (d *Document) SetString(value string, path ...string) error {
	return d.setRaw(encodeString(value), path)
}

func (d *Document) SetStrings(values []string, path ...string) error {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(encodeString(v))
	}
	b.WriteByte(']')
	return d.setRaw(b.Bytes(), path)
}

func (d *Document) SetEntries(entries []domain.Entry, path ...string) error {
	members := make([]member, len(entries))
	for i, e := range entries {
		members[i] = member{key: e.Key, rawKey: encodeString(e.Key), raw: encodeString(e.Value), kind: jsonparser.String}
	}
	return d.setRaw(joinObject(members), path)
}

// Delete removes the member at path. Missing paths are ignored.
func (d *Document) Delete(path ...string) {
	if len(path) == 0 || !d.Has(path...) {
		return
	}
	if out, err := deleteIn(d.data, path); err == nil {
		d.data = out
	}
}

func (d *Document) setRaw(raw []byte, path []string) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path")
	}
	out, err := setIn(d.data, path, raw)
	if err != nil {
		return fmt.Errorf("setting %s: %w", strings.Join(path, "."), err)
	}
	d.data = out
	return nil
}

// member is one key/value pair of a compact object, both kept as raw JSON.
type member struct {
	key    string
	rawKey []byte
	raw    []byte
	kind   jsonparser.ValueType
}

// splitObject lists the members of a compact object. Each member spans
// `"key":value` after the separating comma, so the raw key is whatever
// precedes the value and its colon.
func splitObject(obj []byte) ([]member, error) {
	var members []member
	start := 1
	err := jsonparser.ObjectEach(obj, func(key, value []byte, t jsonparser.ValueType, end int) error {
		raw := value
		if t == jsonparser.String {
			raw = obj[end-len(value)-2 : end]
		}
		span := bytes.TrimPrefix(obj[start:end], []byte{','})
		if len(span) < len(raw)+3 {
			return fmt.Errorf("malformed member %q", key)
		}
		start = end
		members = append(members, member{
			key:    string(key),
			rawKey: span[:len(span)-len(raw)-1],
			raw:    raw,
			kind:   t,
		})
		return nil
	})
	return members, err
}

func joinObject(members []member) []byte {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(m.rawKey)
		b.WriteByte(':')
		b.Write(m.raw)
	}
	b.WriteByte('}')
	return b.Bytes()
}

func indexOf(members []member, key string) int {
	for i, m := range members {
		if m.key == key {
			return i
		}
	}
	return -1
}

// setIn replaces or appends the member at path inside obj, creating
// intermediate objects as needed. Untouched members keep their raw bytes.
func setIn(obj []byte, path []string, raw []byte) ([]byte, error) {
	members, err := splitObject(obj)
	if err != nil {
		return nil, err
	}
	key := path[0]
	idx := indexOf(members, key)

	value := raw
	kind := jsonparser.Unknown
	if len(path) > 1 {
		child := []byte("{}")
		if idx >= 0 {
			if members[idx].kind != jsonparser.Object {
				return nil, fmt.Errorf("%q: %w", key, ErrNotObject)
			}
			child = members[idx].raw
		}
		if value, err = setIn(child, path[1:], raw); err != nil {
			return nil, err
		}
		kind = jsonparser.Object
	}

	if idx >= 0 {
		members[idx].raw = value
		members[idx].kind = kind
	} else {
		members = append(members, member{key: key, rawKey: encodeString(key), raw: value, kind: kind})
	}
	return joinObject(members), nil
}

func deleteIn(obj []byte, path []string) ([]byte, error) {
	members, err := splitObject(obj)
	if err != nil {
		return nil, err
	}
	idx := indexOf(members, path[0])
	if idx < 0 {
		return obj, nil
	}
	if len(path) == 1 {
		members = append(members[:idx], members[idx+1:]...)
		return joinObject(members), nil
	}
	if members[idx].kind != jsonparser.Object {
		return obj, nil
	}
	child, err := deleteIn(members[idx].raw, path[1:])
	if err != nil {
		return nil, err
	}
	members[idx].raw = child
	return joinObject(members), nil
}

// encodeString encodes s as a JSON string without HTML escaping, so ranges
// such as ">=1.0.0 <2.0.0" stay readable.
func encodeString(s string) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(b.Bytes(), "\n")
}
