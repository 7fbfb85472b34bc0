// Package git inspects the repository a site lives in before files are moved.
//
// A migration deletes the legacy pages it relocates and has no undo of its
// own; when the site is under version control a clean worktree is the undo.
package git
