package rewrite

// Location describes where a rewritten document lives relative to the site root.
type Location interface {
	// Name identifies the location in logs.
	Name() string
	// ResourcePrefix is prepended to shared resource references. Empty means
	// the resource pass is skipped.
	ResourcePrefix() string
	// NavPrefix is prepended to rewritten page folder links.
	NavPrefix() string
	// RootHref replaces references to the root page.
	RootHref() string
	// ActiveFolder reports the folder whose navigation link is marked active.
	ActiveFolder() (string, bool)
}

// Root returns the location of the site's root index.html.
func Root() Location { return rootLocation{} }

// Nested returns the location of <folder>/index.html.
func Nested(folder string) Location { return nestedLocation{folder: folder} }

type rootLocation struct{}

func (rootLocation) Name() string                 { return "root" }
func (rootLocation) ResourcePrefix() string       { return "" }
func (rootLocation) NavPrefix() string            { return "" }
func (rootLocation) RootHref() string             { return "./" }
func (rootLocation) ActiveFolder() (string, bool) { return "", false }

type nestedLocation struct {
	folder string
}

func (l nestedLocation) Name() string                 { return l.folder }
func (nestedLocation) ResourcePrefix() string         { return parentDir }
func (nestedLocation) NavPrefix() string              { return parentDir }
func (nestedLocation) RootHref() string               { return parentDir }
func (l nestedLocation) ActiveFolder() (string, bool) { return l.folder, l.folder != "" }

const parentDir = "../"

// FolderHref is the href a document at loc uses to reach folder.
func FolderHref(loc Location, folder string) string {
	return loc.NavPrefix() + folder + "/"
}
