// Package importer loads source material for chunking from local
// files: HTML pages are reduced to their article text, anything else
// is read as plain text.
package importer

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// Article is the imported source material with whatever metadata the
// file carried.
type Article struct {
	Title     string
	Author    string
	SourceURL string
	Text      string
}

// Load reads the file at path. Files ending in .html or .htm go
// through the HTML extractor; everything else is taken verbatim, with
// the file name (minus extension) as the title.
func Load(path string) (Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return Article{}, err
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		return ParseHTML(f)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return Article{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Article{Title: name, Text: strings.TrimSpace(string(data))}, nil
}

// ParseHTML extracts the article from an HTML document: the title from
// <title> (or the first <h1> when absent), the author from the author
// meta tag, the source from a canonical link or og:url, and the text
// from paragraph-level elements separated by blank lines. Script,
// style, nav, header, footer and aside subtrees are skipped.
func ParseHTML(r io.Reader) (Article, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Article{}, err
	}

	var a Article
	var firstH1 string
	var blocks []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "nav", "header", "footer", "aside":
				return

			case "title":
				if a.Title == "" {
					a.Title = collapseSpace(textContent(n))
				}
				return

			case "meta":
				name := strings.ToLower(getAttr(n, "name"))
				prop := strings.ToLower(getAttr(n, "property"))
				if name == "author" && a.Author == "" {
					a.Author = getAttr(n, "content")
				}
				if prop == "og:url" && a.SourceURL == "" {
					a.SourceURL = getAttr(n, "content")
				}
				return

			case "link":
				if strings.EqualFold(getAttr(n, "rel"), "canonical") {
					a.SourceURL = getAttr(n, "href")
				}
				return

			case "h1":
				text := collapseSpace(textContent(n))
				if firstH1 == "" {
					firstH1 = text
				}
				if text != "" {
					blocks = append(blocks, text)
				}
				return

			case "h2", "h3", "h4", "h5", "h6", "p", "li", "blockquote", "pre":
				if text := collapseSpace(textContent(n)); text != "" {
					blocks = append(blocks, text)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if a.Title == "" {
		a.Title = firstH1
	}
	a.Text = strings.Join(blocks, "\n\n")
	return a, nil
}

// textContent collects all text under a node.
func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}

// getAttr returns an attribute value by case-insensitive key.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

// collapseSpace trims and collapses runs of whitespace to single
// spaces, undoing HTML source formatting.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
