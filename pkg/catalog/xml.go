package catalog

import (
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/quakepy/qcat/pkg/model"
	"github.com/quakepy/qcat/pkg/xmltree"
)

// Fixed document structure. Only local tag names matter when matching
// elements; namespaces are emitted but not validated on read.
const (
	RootTag      = "quakeml"
	ParamsTag    = "eventParameters"
	NamespaceBED = "http://quakeml.org/xmlns/bed/1.2"
	NamespaceQML = "http://quakeml.org/xmlns/quakeml/1.2"
)

// ReadXML parses a whole QuakeML document from r, replacing the
// catalog's event tree. The stream must open with an XML declaration
// and carry a recognized root element; a structurally invalid document
// aborts the whole call. Root-level foreign attributes are kept for
// re-emission on write.
func (c *Catalog) ReadXML(r io.Reader) error {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return parseError(err)
	}
	if !hasDeclaration(doc) {
		return declarationError()
	}
	root := doc.Root()
	if root == nil {
		return rootTagError("")
	}

	var params *etree.Element
	switch localName(root.Tag) {
	case RootTag:
		for _, ch := range root.ChildElements() {
			if localName(ch.Tag) == ParamsTag {
				params = ch
				break
			}
		}
		if params == nil {
			return rootTagError(root.Tag)
		}
	case ParamsTag:
		params = root
	default:
		return rootTagError(root.Tag)
	}

	c.rootAttrs = c.rootAttrs[:0]
	for _, a := range root.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		c.rootAttrs = append(c.rootAttrs, attr{a.Space, a.Key, a.Value})
	}

	tree := &model.EventParameters{}
	if err := xmltree.Unmarshal(tree, params, nil); err != nil {
		return parseError(err)
	}
	c.Root = tree
	return nil
}

// WriteXML serializes the whole catalog to w. Pretty-printing is
// attempted on an in-memory copy first; when reformatting fails the
// unformatted serialization is written instead, so formatting can be
// lost but data cannot.
func (c *Catalog) WriteXML(w io.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("q:" + RootTag)
	root.CreateAttr("xmlns:q", NamespaceQML)
	root.CreateAttr("xmlns", NamespaceBED)
	for _, a := range c.rootAttrs {
		key := a.key
		if a.space != "" {
			key = a.space + ":" + a.key
		}
		root.CreateAttr(key, a.value)
	}

	params, err := xmltree.Marshal(c.Root, ParamsTag, c.treeOpts)
	if err != nil {
		return err
	}
	root.AddChild(params)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}

	pretty := etree.NewDocument()
	if err := pretty.ReadFromBytes(buf.Bytes()); err == nil {
		pretty.Indent(2)
		if _, err := pretty.WriteTo(w); err != nil {
			return err
		}
		return nil
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func hasDeclaration(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.ProcInst:
			return t.Target == "xml"
		case *etree.Element:
			return false
		}
	}
	return false
}

func localName(tag string) string {
	if i := strings.Index(tag, ":"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}
