// Package migrate moves legacy HTML pages into folder-per-page layout.
//
// A migration runs in two phases. Plan reads every source page and computes
// the rewritten documents together with the filesystem actions needed to put
// them in place; it never writes. Apply executes those actions in order:
// legacy pages in mapping order, then the root page. Apply stops at the first
// failure and does not roll back pages that were already moved.
//
// A mapped page that does not exist is skipped with a notice. Every other
// filesystem error is fatal.
package migrate
