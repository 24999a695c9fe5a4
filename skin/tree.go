package skin

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Tree exclusively owns a skin's objects; no object outlives its tree
type Tree struct {
	root    Object
	objects []Object // Pre-order
	byID    map[string][]Object
	log     *logrus.Entry
}

// NewTree indexes the subtree under root
func NewTree(root Object) *Tree {
	t := &Tree{
		root: root,
		byID: make(map[string][]Object),
		log:  root.Base().log,
	}
	t.index(root)
	return t
}

func (t *Tree) index(o Object) {
	t.objects = append(t.objects, o)
	if id := o.Base().id; id != "" {
		t.byID[id] = append(t.byID[id], o)
	}
	for _, c := range o.Base().children {
		t.index(c)
	}
}

// Root returns the root object
func (t *Tree) Root() Object { return t.root }

// Objects returns all objects in pre-order
func (t *Tree) Objects() []Object { return t.objects }

// Len returns the number of objects
func (t *Tree) Len() int { return len(t.objects) }

// Find returns the first object in document order with id (case-insensitive)
func (t *Tree) Find(id string) (Object, bool) {
	objs := t.byID[strings.ToLower(id)]
	if len(objs) == 0 {
		return nil, false
	}
	return objs[0], true
}

// FindAll returns every object sharing id; ids are not required to be unique
func (t *Tree) FindAll(id string) []Object {
	return t.byID[strings.ToLower(id)]
}

// MustFind is Find for callers that require the object, failing with ErrMissingID
func (t *Tree) MustFind(id string) (Object, error) {
	if o, ok := t.Find(id); ok {
		return o, nil
	}
	return nil, &ObjectError{Op: "tree.MustFind", ID: strings.ToLower(id), Err: ErrMissingID}
}

// Init initializes every object in pre-order, parents before children
func (t *Tree) Init() error {
	ctx := &Context{Tree: t, Log: t.log}
	for _, o := range t.objects {
		if err := o.Base().Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Draw presents every object in pre-order
func (t *Tree) Draw() error {
	var errs []error
	for _, o := range t.objects {
		if err := o.Base().Draw(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DrawDirty presents only objects changed since their last draw, returns how many
func (t *Tree) DrawDirty() int {
	n := 0
	for _, o := range t.objects {
		g := o.Base()
		if !g.dirty || !g.state.Initialized() {
			continue
		}
		if err := g.Draw(); err == nil {
			n++
		}
	}
	return n
}

// Dispose tears the tree down children first
func (t *Tree) Dispose() {
	for i := len(t.objects) - 1; i >= 0; i-- {
		t.objects[i].Base().Dispose()
	}
	t.byID = make(map[string][]Object)
}
