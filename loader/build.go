package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lixenwraith/skinvm/registry"
	"github.com/lixenwraith/skinvm/skin"
)

// Policy selects how unrecognized attributes are reported
type Policy int

const (
	PolicyWarn Policy = iota
	PolicyIgnore
	PolicyError
)

// ParsePolicy maps the configuration names warn, ignore and error
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "warn":
		return PolicyWarn, nil
	case "ignore":
		return PolicyIgnore, nil
	case "error":
		return PolicyError, nil
	}
	return PolicyWarn, fmt.Errorf("unknown attribute policy %q", s)
}

func (p Policy) String() string {
	switch p {
	case PolicyIgnore:
		return "ignore"
	case PolicyError:
		return "error"
	}
	return "warn"
}

// Diagnostic reports one attribute no object recognized, or a skipped subtree
// whose kind has no factory (Err set, Key and Value empty)
type Diagnostic struct {
	Path  string
	Line  int
	Key   string
	Value string
	Err   error
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		if d.Line > 0 {
			return fmt.Sprintf("%s (line %d): %v, subtree skipped", d.Path, d.Line, d.Err)
		}
		return fmt.Sprintf("%s: %v, subtree skipped", d.Path, d.Err)
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s (line %d): unknown attribute %s=%q", d.Path, d.Line, d.Key, d.Value)
	}
	return fmt.Sprintf("%s: unknown attribute %s=%q", d.Path, d.Key, d.Value)
}

// Build creates and initializes the object tree described by root
// Objects are created in pre-order with attributes applied before children;
// initialization starts once the whole tree exists.
// A child of unknown kind is reported as a Diagnostic under every policy and its
// subtree is left out; only an unknown root kind fails the build
func Build(root *skin.Node, reg *registry.Registry, deps skin.Deps, policy Policy) (*skin.Tree, []Diagnostic, error) {
	b := &builder{reg: reg, deps: deps, policy: policy}
	obj, err := b.create(root, segment(root, 0))
	if err != nil {
		return nil, b.diags, err
	}
	tree := skin.NewTree(obj)
	if err := tree.Init(); err != nil {
		tree.Dispose()
		return nil, b.diags, err
	}
	return tree, b.diags, nil
}

type builder struct {
	reg    *registry.Registry
	deps   skin.Deps
	policy Policy
	diags  []Diagnostic
}

func (b *builder) create(n *skin.Node, path string) (skin.Object, error) {
	obj, unknown, err := b.reg.Create(n, b.deps)
	if errors.Is(err, registry.ErrKindNotFound) {
		return nil, &kindError{node: n, path: path, err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, a := range unknown {
		d := Diagnostic{Path: path, Line: n.Line, Key: a.Key, Value: a.Value}
		switch b.policy {
		case PolicyIgnore:
			continue
		case PolicyError:
			return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownAttribute, a.Key)
		}
		if b.deps.Log != nil {
			b.deps.Log.WithField("path", path).Warn(d.String())
		}
		b.diags = append(b.diags, d)
	}
	for i, c := range n.Children {
		childPath := path + "/" + segment(c, i)
		child, err := b.create(c, childPath)
		var kindErr *kindError
		if errors.As(err, &kindErr) && kindErr.node == c {
			d := Diagnostic{Path: childPath, Line: c.Line, Err: kindErr.err}
			if b.deps.Log != nil {
				b.deps.Log.WithField("path", childPath).Warn(d.String())
			}
			b.diags = append(b.diags, d)
			continue
		}
		if err != nil {
			return nil, err
		}
		obj.Base().AddChild(child)
	}
	return obj, nil
}

// kindError marks a node whose kind has no factory
type kindError struct {
	node *skin.Node
	path string
	err  error
}

func (e *kindError) Error() string { return e.path + ": " + e.err.Error() }

func (e *kindError) Unwrap() error { return e.err }

// segment names a node within its parent: kind#id, or kind[index] without an id
func segment(n *skin.Node, index int) string {
	if id, ok := n.Attr("id"); ok && id != "" {
		return n.Kind + "#" + strings.ToLower(id)
	}
	return n.Kind + "[" + strconv.Itoa(index) + "]"
}

// LoadFile parses a skin by extension (.xml, .yaml, .yml) and builds it
func LoadFile(path string, reg *registry.Registry, deps skin.Deps, policy Policy) (*Document, *skin.Tree, []Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	var doc *Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(f)
	default:
		doc, err = ParseXML(f)
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	tree, diags, err := Build(doc.Root, reg, deps, policy)
	if err != nil {
		return doc, nil, diags, fmt.Errorf("%s: %w", path, err)
	}
	return doc, tree, diags, nil
}
