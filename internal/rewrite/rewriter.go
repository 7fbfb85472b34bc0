package rewrite

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
)

// ActiveMarker is appended after the href of a document's own navigation link.
const ActiveMarker = `class="active"`

var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

// resourceRefs are the attribute openings of shared assets, matched literally.
var resourceRefs = []string{
	`href="styles.css"`,
	`src="script.js"`,
	`src="images/`,
	`srcset="images/`,
	`content="images/`,
}

// LinkChange records one attribute value the rewriter changed.
type LinkChange struct {
	Kind LinkKind
	From string
	To   string
}

// Result is the outcome of rewriting one document.
type Result struct {
	Content     string
	Changes     []LinkChange
	ActiveMarks int
}

// Count returns how many changes of kind were applied.
func (r Result) Count(kind LinkKind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Rewriter applies the document passes for a fixed page mapping.
// It holds no per-document state and may be reused.
type Rewriter struct {
	rules  []LinkRule
	passes []pass
}

type pass struct {
	name  string
	apply func(doc *document)
}

type document struct {
	content string
	loc     Location
	result  *Result
}

// New creates a Rewriter using DefaultRules for pages.
func New(pages []config.Page) *Rewriter {
	return NewWithRules(DefaultRules(pages))
}

// NewWithRules creates a Rewriter with an explicit link rule list.
func NewWithRules(rules []LinkRule) *Rewriter {
	r := &Rewriter{rules: rules}
	r.passes = []pass{
		{name: "resources", apply: rewriteResources},
		{name: "links", apply: r.rewriteLinks},
		{name: "active", apply: markActive},
	}
	return r
}

// Passes lists the pass names in execution order.
func (r *Rewriter) Passes() []string {
	names := make([]string, len(r.passes))
	for i, p := range r.passes {
		names[i] = p.name
	}
	return names
}

// Rewrite runs every pass over content for a document written at loc.
func (r *Rewriter) Rewrite(content string, loc Location) Result {
	res := Result{}
	doc := &document{content: content, loc: loc, result: &res}
	for _, p := range r.passes {
		p.apply(doc)
	}
	res.Content = doc.content
	return res
}

// RewriteLink rewrites a single href value. Values no rule accepts are
// returned unchanged with KindUnrecognized.
func (r *Rewriter) RewriteLink(target string, loc Location) (string, LinkKind) {
	for _, rule := range r.rules {
		if rule.Match(target) {
			return rule.Rewrite(target, loc), rule.Kind
		}
	}
	return target, KindUnrecognized
}

// Classify returns the kind of the first rule matching target.
func (r *Rewriter) Classify(target string) LinkKind {
	for _, rule := range r.rules {
		if rule.Match(target) {
			return rule.Kind
		}
	}
	return KindUnrecognized
}

func rewriteResources(doc *document) {
	prefix := doc.loc.ResourcePrefix()
	if prefix == "" {
		return
	}

	for _, ref := range resourceRefs {
		n := strings.Count(doc.content, ref)
		if n == 0 {
			continue
		}
		replacement := strings.Replace(ref, `="`, `="`+prefix, 1)
		doc.content = strings.ReplaceAll(doc.content, ref, replacement)

		from, to := attrValue(ref), attrValue(replacement)
		for range n {
			doc.result.Changes = append(doc.result.Changes, LinkChange{Kind: KindResource, From: from, To: to})
		}
	}
}

func (r *Rewriter) rewriteLinks(doc *document) {
	doc.content = hrefPattern.ReplaceAllStringFunc(doc.content, func(match string) string {
		target := match[len(`href="`) : len(match)-1]
		rewritten, kind := r.RewriteLink(target, doc.loc)
		if rewritten == target {
			return match
		}
		doc.result.Changes = append(doc.result.Changes, LinkChange{Kind: kind, From: target, To: rewritten})
		return `href="` + rewritten + `"`
	})
}

func markActive(doc *document) {
	folder, ok := doc.loc.ActiveFolder()
	if !ok {
		return
	}

	own := `href="` + FolderHref(doc.loc, folder) + `"`
	doc.result.ActiveMarks = strings.Count(doc.content, own)
	if doc.result.ActiveMarks == 0 {
		return
	}
	doc.content = strings.ReplaceAll(doc.content, own, own+" "+ActiveMarker)
}

// attrValue strips the attribute name and quotes from a literal like `src="images/`.
func attrValue(ref string) string {
	_, value, _ := strings.Cut(ref, `="`)
	return strings.TrimSuffix(value, `"`)
}
