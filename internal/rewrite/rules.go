package rewrite

import (
	"strings"

	"git.home.luguber.info/inful/sitemigrate/internal/config"
)

// LinkKind classifies an href value.
type LinkKind string

const (
	KindExternal     LinkKind = "external"
	KindFragment     LinkKind = "fragment"
	KindMailto       LinkKind = "mailto"
	KindRoot         LinkKind = "root"
	KindLegacy       LinkKind = "legacy"
	KindUnrecognized LinkKind = "unrecognized"

	// KindResource marks shared asset references adjusted by the resource pass.
	KindResource LinkKind = "resource"
)

// LinkRule is one {matcher, rewriter} pair of the link pass.
type LinkRule struct {
	Kind    LinkKind
	Match   func(target string) bool
	Rewrite func(target string, loc Location) string
}

// DefaultRules returns the ordered link rules for a page mapping:
// external, fragment and mailto links are kept, then the root page, then one
// rule per mapped page.
func DefaultRules(pages []config.Page) []LinkRule {
	rules := []LinkRule{
		keep(KindExternal, func(t string) bool { return strings.HasPrefix(t, "http") }),
		keep(KindFragment, func(t string) bool { return strings.HasPrefix(t, "#") }),
		keep(KindMailto, func(t string) bool { return strings.HasPrefix(t, "mailto:") }),
		{
			Kind:  KindRoot,
			Match: func(t string) bool { return MatchesFile(t, config.RootPage) },
			Rewrite: func(t string, loc Location) string {
				return loc.RootHref() + strings.TrimPrefix(t, config.RootPage)
			},
		},
	}

	for _, p := range pages {
		rules = append(rules, pageRule(p))
	}
	return rules
}

func pageRule(p config.Page) LinkRule {
	return LinkRule{
		Kind:  KindLegacy,
		Match: func(t string) bool { return MatchesFile(t, p.File) },
		Rewrite: func(t string, loc Location) string {
			return FolderHref(loc, p.Folder) + strings.TrimPrefix(t, p.File)
		},
	}
}

func keep(kind LinkKind, match func(string) bool) LinkRule {
	return LinkRule{
		Kind:    kind,
		Match:   match,
		Rewrite: func(t string, _ Location) string { return t },
	}
}

// MatchesFile reports whether target names file exactly or with a query or
// fragment suffix. Only prefixes match: "docs/about.html" does not name
// "about.html".
func MatchesFile(target, file string) bool {
	if !strings.HasPrefix(target, file) {
		return false
	}
	rest := target[len(file):]
	return rest == "" || rest[0] == '?' || rest[0] == '#'
}
