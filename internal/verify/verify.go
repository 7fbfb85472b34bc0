// Package verify checks a migrated site for links that still name a legacy page.
//
// Unlike the rewriter, the verifier parses documents with golang.org/x/net/html,
// so it also sees references the pattern-based rewrite does not touch (single
// quoted attributes, unusual spacing).
package verify

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
	"git.home.luguber.info/inful/sitemigrate/internal/foundation/errors"
	"git.home.luguber.info/inful/sitemigrate/internal/rewrite"
)

// linkAttrs lists the attribute checked per element.
var linkAttrs = map[string]string{
	"a":      "href",
	"area":   "href",
	"link":   "href",
	"img":    "src",
	"script": "src",
	"source": "src",
	"iframe": "src",
}

// Finding is a reference to a legacy page left in an emitted document.
type Finding struct {
	Document string // Relative to the site root
	Tag      string
	Attr     string
	Value    string
	Page     string // The legacy filename referenced
	Element  int    // Ordinal of the element in document order
}

// Report lists the documents checked and what was found.
type Report struct {
	Documents []string
	Findings  []Finding
}

// OK reports whether no stale reference was found.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

// Verifier checks documents against one page mapping.
type Verifier struct {
	pages []config.Page
}

// New creates a Verifier for the given mapping.
func New(pages []config.Page) *Verifier {
	return &Verifier{pages: pages}
}

// CheckDir verifies the root page and every existing <folder>/index.html under dir.
func (v *Verifier) CheckDir(ctx context.Context, dir string) (*Report, error) {
	report := &Report{}

	docs := []string{config.RootPage}
	for _, p := range v.pages {
		docs = append(docs, p.Folder+"/"+config.RootPage)
	}

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, errors.WrapError(err, errors.CategoryRuntime, "verification interrupted").Build()
		}

		findings, err := v.checkFile(filepath.Join(dir, filepath.FromSlash(doc)), doc)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return report, err
		}
		report.Documents = append(report.Documents, doc)
		report.Findings = append(report.Findings, findings...)
	}
	return report, nil
}

func (v *Verifier) checkFile(path, name string) ([]Finding, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open HTML file").
			WithContext("path", path).
			Build()
	}
	defer func() {
		_ = file.Close() // Ignore close errors on read-only operation
	}()

	return v.CheckDocument(name, file)
}

// CheckDocument parses one HTML document and returns its stale references.
func (v *Verifier) CheckDocument(name string, r io.Reader) ([]Finding, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse HTML").
			WithContext("document", name).
			Build()
	}

	var findings []Finding
	var element int

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			element++
			if f, ok := v.checkElement(n); ok {
				f.Document = name
				f.Element = element
				findings = append(findings, f)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return findings, nil
}

func (v *Verifier) checkElement(n *html.Node) (Finding, bool) {
	attr, ok := linkAttrs[n.Data]
	if !ok {
		return Finding{}, false
	}

	value := getAttr(n, attr)
	if value == "" {
		return Finding{}, false
	}

	for _, p := range v.pages {
		if rewrite.MatchesFile(value, p.File) {
			return Finding{Tag: n.Data, Attr: attr, Value: value, Page: p.File}, true
		}
	}
	return Finding{}, false
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
