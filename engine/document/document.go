// Package document reads the host document: the HTML page that declares the rendering canvas and the
// UI mount point. Element lookup is by id, mirroring getElementById.
package document

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Element is an immutable view of a single element in the host document.
type Element struct {
	// ID is the value of the element's id attribute.
	ID string
	// Tag is the lower-case element name (e.g. "canvas", "div").
	Tag string
	// Attrs holds every attribute on the element keyed by lower-case name.
	Attrs map[string]string
}

// Attr returns the named attribute and whether it was present.
//
// Parameters:
//   - name: attribute name (case-insensitive)
//
// Returns:
//   - string: the attribute value
//   - bool: true if the attribute exists
func (e Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[strings.ToLower(name)]
	return v, ok
}

// IntAttr parses the named attribute as a positive integer, returning fallback when it is
// missing, malformed or not positive.
//
// Parameters:
//   - name: attribute name
//   - fallback: value used when the attribute cannot be used
//
// Returns:
//   - int: the parsed value or fallback
func (e Element) IntAttr(name string, fallback int) int {
	v, ok := e.Attr(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Document is a parsed host document.
type Document interface {
	// Title returns the text of the document's <title> element, or "" if there is none.
	//
	// Returns:
	//   - string: the trimmed title text
	Title() string

	// ElementByID finds the first element whose id attribute equals id.
	//
	// Parameters:
	//   - id: the element id to look up
	//
	// Returns:
	//   - Element: the element
	//   - bool: false if no element carries the id
	ElementByID(id string) (Element, bool)

	// Elements returns every element that carries an id, in document order.
	//
	// Returns:
	//   - []Element: the identified elements
	Elements() []Element
}

type document struct {
	title    string
	elements []Element
	byID     map[string]int
}

var _ Document = &document{}

// Parse reads an HTML document from r.
//
// Parameters:
//   - r: the HTML source
//
// Returns:
//   - Document: the parsed document
//   - error: error if the HTML cannot be tokenized
func Parse(r io.Reader) (Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	d := &document{byID: make(map[string]int)}
	d.walk(root)
	return d, nil
}

// ParseString parses an HTML document held in a string.
func ParseString(src string) (Document, error) {
	return Parse(strings.NewReader(src))
}

// Load opens and parses the HTML document at path.
//
// Parameters:
//   - path: file system path of the document
//
// Returns:
//   - Document: the parsed document
//   - error: error if the file cannot be read or parsed
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("document: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func (d *document) Title() string {
	return d.title
}

func (d *document) ElementByID(id string) (Element, bool) {
	i, ok := d.byID[id]
	if !ok {
		return Element{}, false
	}
	return d.elements[i], true
}

func (d *document) Elements() []Element {
	out := make([]Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// walk visits the node tree depth-first in document order. The first element with a given
// id wins, matching getElementById.
func (d *document) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if n.Data == "title" && d.title == "" {
			d.title = strings.TrimSpace(textContent(n))
		}
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			attrs[strings.ToLower(a.Key)] = a.Val
		}
		if id, ok := attrs["id"]; ok && id != "" {
			if _, dup := d.byID[id]; !dup {
				d.byID[id] = len(d.elements)
				d.elements = append(d.elements, Element{ID: id, Tag: strings.ToLower(n.Data), Attrs: attrs})
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c)
	}
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
