// Package rewrite adjusts the links of a static HTML page for its position in
// the folder-per-page layout.
//
// Rewriting is plain pattern substitution over the markup, run as an ordered
// list of passes:
//
//   - resources: shared stylesheet, script and image references gain a "../"
//     prefix when the document moves one level down
//   - links: every href value runs through an ordered list of LinkRule; the
//     first rule whose matcher accepts the value rewrites it
//   - active: the navigation link pointing at the document's own folder gets
//     an active marker
//
// Which passes apply and which prefixes they use is decided by the Location
// the document is written to: Root() or Nested(folder).
package rewrite
