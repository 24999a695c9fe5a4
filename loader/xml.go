package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lixenwraith/skinvm/skin"
)

// wrapperElements enclose a skin without being objects themselves
var wrapperElements = map[string]bool{
	"winampabstractionlayer": true,
	"wasabixml":              true,
}

// skippedElements carry resources or scripts rather than GUI objects
var skippedElements = map[string]bool{
	"include":         true,
	"script":          true,
	"elements":        true,
	"bitmap":          true,
	"bitmapfont":      true,
	"truetypefont":    true,
	"color":           true,
	"gammaset":        true,
	"gammagroup":      true,
	"groupdef":        true,
	"accelerators":    true,
	"scripts":         true,
	"eqvis":           true,
	"componentbucket": true,
}

// ParseXML reads Winamp Modern skin markup
// Element names become kinds and attributes keep document order
// Several top-level elements are gathered under a plain guiobject root
func ParseXML(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := &Document{}
	var (
		stack []*skin.Node // nil marks a wrapper element
		tops  []*skin.Node
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse skin xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "skininfo":
				info := &SkinInfo{}
				if err := dec.DecodeElement(info, &t); err != nil {
					return nil, fmt.Errorf("parse skininfo: %w", err)
				}
				info.normalize()
				doc.Info = info
			case skippedElements[name]:
				doc.Skipped = append(doc.Skipped, name)
				if err := dec.Skip(); err != nil {
					return nil, fmt.Errorf("skip <%s>: %w", name, err)
				}
			case wrapperElements[name]:
				stack = append(stack, nil)
			default:
				line, _ := dec.InputPos()
				n := &skin.Node{Kind: name, Line: line}
				for _, a := range t.Attr {
					n.Attrs = append(n.Attrs, skin.Attr{Key: a.Name.Local, Value: a.Value})
				}
				if len(stack) > 0 && stack[len(stack)-1] != nil {
					p := stack[len(stack)-1]
					p.Children = append(p.Children, n)
				} else {
					tops = append(tops, n)
				}
				stack = append(stack, n)
			}
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	root, err := gather(tops)
	if err != nil {
		return nil, err
	}
	doc.Root = root
	return doc, nil
}

func gather(tops []*skin.Node) (*skin.Node, error) {
	switch len(tops) {
	case 0:
		return nil, ErrEmptySkin
	case 1:
		return tops[0], nil
	}
	return &skin.Node{Kind: skin.KindGuiObject, Children: tops}, nil
}
