// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// parsePage walks an HTML document and extracts the visible text and all
// anchor links, resolving relative hrefs against base.
func parsePage(doc *html.Node, base *url.URL) (string, []Link) {
	var text strings.Builder
	var links []Link

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			case "a":
				if href := attrValue(n, "href"); href != "" {
					if abs := resolveRef(base, href); abs != "" {
						links = append(links, Link{Text: nodeText(n), URL: abs})
					}
				}
			case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteByte('\n')
			}
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				text.WriteString(t)
				text.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(text.String()), links
}

// nodeText returns the trimmed concatenated text content of a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// resolveRef resolves href against base and drops non-HTTP schemes
// (javascript:, mailto:, fragments).
func resolveRef(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	abs := ref
	if base != nil {
		abs = base.ResolveReference(ref)
	}
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return ""
	}
	abs.Fragment = ""
	return abs.String()
}
