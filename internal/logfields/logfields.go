package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID    = "run_id"
	KeyPage     = "page"
	KeyFolder   = "folder"
	KeyPath     = "path"
	KeyTarget   = "target"
	KeyDir      = "dir"
	KeyAction   = "action"
	KeyLinkKind = "link_kind"
	KeyFrom     = "from"
	KeyTo       = "to"
	KeyCount    = "count"
	KeyDryRun   = "dry_run"
	KeyError    = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr     { return slog.String(KeyRunID, id) }
func Page(name string) slog.Attr    { return slog.String(KeyPage, name) }
func Folder(name string) slog.Attr  { return slog.String(KeyFolder, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func Target(p string) slog.Attr     { return slog.String(KeyTarget, p) }
func Dir(d string) slog.Attr        { return slog.String(KeyDir, d) }
func Action(a string) slog.Attr     { return slog.String(KeyAction, a) }
func LinkKind(k string) slog.Attr   { return slog.String(KeyLinkKind, k) }
func From(v string) slog.Attr       { return slog.String(KeyFrom, v) }
func To(v string) slog.Attr         { return slog.String(KeyTo, v) }
func Count(n int) slog.Attr         { return slog.Int(KeyCount, n) }
func DryRun(enabled bool) slog.Attr { return slog.Bool(KeyDryRun, enabled) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
