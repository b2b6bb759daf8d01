// Package storage keeps shape documents as YAML.
//
// A [Document] is a tree of YAML mappings that implements [shape.Storage].
// Child nodes written with an index are stored under the key name followed
// by index+1, so the first shape of a list is "shape1".
package storage

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"honnef.co/go/vgcore"
	"honnef.co/go/vgcore/shape"
)

var (
	ErrNotMapping = errors.New("document root is not a mapping")
	ErrBadID      = errors.New("document id is not a UUID")
)

// Version is written into new documents.
const Version = 1

// Document is an in-memory YAML document. It is not safe for concurrent
// use.
type Document struct {
	id    uuid.UUID
	root  *yaml.Node
	stack []*yaml.Node
	err   error
}

var _ shape.Storage = (*Document)(nil)

// New returns an empty document with a fresh id.
func New() *Document {
	d := &Document{id: uuid.New(), root: mapping()}
	d.root.Content = append(d.root.Content,
		scalar("id"), scalar(d.id.String()),
		scalar("version"), intNode(Version),
	)
	return d
}

// Read parses a document. A document without an id gets a fresh one.
func Read(r io.Reader) (*Document, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read document: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return New(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("read document: %w", ErrNotMapping)
	}

	d := &Document{root: root}
	if n := d.value(root, "id"); n != nil {
		id, err := uuid.Parse(n.Value)
		if err != nil {
			return nil, fmt.Errorf("read document: %w: %v", ErrBadID, err)
		}
		d.id = id
	} else {
		d.id = uuid.New()
		d.set(root, "id", scalar(d.id.String()))
	}
	return d, nil
}

// Open reads the document in the named file.
func Open(name string) (*Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the document as YAML.
func (d *Document) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return enc.Close()
}

// Save writes the document to the named file, replacing it.
func (d *Document) Save(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d *Document) ID() uuid.UUID { return d.id }

// Err returns the first error reported through SetError.
func (d *Document) Err() error { return d.err }

// Rewind returns to the root node and forgets the recorded error.
func (d *Document) Rewind() {
	d.stack = d.stack[:0]
	d.err = nil
}

// SaveShapes replaces the shapes of the document with those of l.
func (d *Document) SaveShapes(l *shape.List) error {
	d.Rewind()
	if !l.Save(d) {
		if d.err != nil {
			return d.err
		}
		return errors.New("save shapes: a shape failed to save")
	}
	vgcore.Logger().Debug("saved shapes", "doc", d.id, "count", l.Len())
	return nil
}

// LoadShapes reads the shapes of the document into l. Shapes that cannot
// be loaded are skipped and reported in the error.
func (d *Document) LoadShapes(f *shape.Factory, l *shape.List) (int, error) {
	d.Rewind()
	n, err := l.Load(f, d, false)
	vgcore.Logger().Debug("loaded shapes", "doc", d.id, "count", n)
	return n, err
}

func (d *Document) cur() *yaml.Node {
	if n := len(d.stack); n > 0 {
		return d.stack[n-1]
	}
	return d.root
}

func key(name string, index int) string {
	if index < 0 {
		return name
	}
	return name + strconv.Itoa(index+1)
}

func (d *Document) ReadNode(name string, index int, ended bool) bool {
	if ended {
		if n := len(d.stack); n > 0 {
			d.stack = d.stack[:n-1]
		}
		return true
	}
	n := d.value(d.cur(), key(name, index))
	if n == nil || n.Kind != yaml.MappingNode {
		return false
	}
	d.stack = append(d.stack, n)
	return true
}

func (d *Document) WriteNode(name string, index int, ended bool) bool {
	if ended {
		if n := len(d.stack); n > 0 {
			d.stack = d.stack[:n-1]
		}
		return true
	}
	n := mapping()
	d.set(d.cur(), key(name, index), n)
	d.stack = append(d.stack, n)
	return true
}

func (d *Document) ReadInt(name string, def int) int {
	v := def
	d.decode(name, &v)
	return v
}

func (d *Document) ReadFloat(name string, def float64) float64 {
	v := def
	d.decode(name, &v)
	return v
}

func (d *Document) ReadBool(name string, def bool) bool {
	v := def
	d.decode(name, &v)
	return v
}

func (d *Document) ReadString(name string) string {
	var v string
	d.decode(name, &v)
	return v
}

// ReadFloatArray copies up to len(values) numbers and returns how many it
// copied. With nil values it returns the length of the stored array.
func (d *Document) ReadFloatArray(name string, values []float64) int {
	n := d.value(d.cur(), name)
	if n == nil || n.Kind != yaml.SequenceNode {
		return 0
	}
	if values == nil {
		return len(n.Content)
	}
	count := 0
	for _, item := range n.Content {
		if count >= len(values) {
			break
		}
		if err := item.Decode(&values[count]); err != nil {
			break
		}
		count++
	}
	return count
}

func (d *Document) WriteInt(name string, v int)       { d.set(d.cur(), name, intNode(v)) }
func (d *Document) WriteBool(name string, v bool)     { d.set(d.cur(), name, encode(v)) }
func (d *Document) WriteString(name, v string)        { d.set(d.cur(), name, encode(v)) }
func (d *Document) WriteFloat(name string, v float64) { d.set(d.cur(), name, floatNode(v)) }

func (d *Document) WriteFloatArray(name string, v []float64) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, f := range v {
		seq.Content = append(seq.Content, floatNode(f))
	}
	d.set(d.cur(), name, seq)
}

// SetError records the first error and returns false.
func (d *Document) SetError(err error) bool {
	if d.err == nil {
		d.err = err
	}
	vgcore.Logger().Warn("document error", "doc", d.id, "err", err)
	return false
}

func (d *Document) decode(name string, v any) {
	n := d.value(d.cur(), name)
	if n == nil || n.Kind != yaml.ScalarNode {
		return
	}
	_ = n.Decode(v)
}

// value returns the value of k in the mapping m, or nil.
func (d *Document) value(m *yaml.Node, k string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == k {
			return m.Content[i+1]
		}
	}
	return nil
}

// set replaces or appends k in the mapping m.
func (d *Document) set(m *yaml.Node, k string, v *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == k {
			m.Content[i+1] = v
			return
		}
	}
	m.Content = append(m.Content, scalar(k), v)
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Numbers are left untagged so that they are written plain.
func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.Itoa(v)}
}

func floatNode(v float64) *yaml.Node {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	switch {
	case math.IsNaN(v):
		s = ".nan"
	case math.IsInf(v, 1):
		s = ".inf"
	case math.IsInf(v, -1):
		s = "-.inf"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

func encode(v any) *yaml.Node {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return scalar(fmt.Sprint(v))
	}
	return &n
}
