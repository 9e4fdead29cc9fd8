package vtpl

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractTemplate parses an HTML document and returns the template held by
// the element whose id attribute equals id. For a <script> element (the
// text/x-template convention) that is its text content; for anything else it
// is the element's outer HTML as the document parser normalized it.
func ExtractTemplate(r io.Reader, id string) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	node := findByID(doc, id)
	if node == nil {
		return "", ErrElementNotFound{ID: id}
	}

	if node.DataAtom == atom.Script {
		var sb strings.Builder
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String(), nil
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return "", fmt.Errorf("failed to render #%s: %w", id, err)
	}
	return buf.String(), nil
}

// findByID returns the first element in document order with the given id
func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// CompileElement extracts the template addressed by id from the document in
// r and compiles it.
func (c *Compiler) CompileElement(r io.Reader, id string) (*Result, error) {
	template, err := ExtractTemplate(r, id)
	if err != nil {
		return nil, err
	}
	return c.Compile(template)
}
