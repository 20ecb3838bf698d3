package analysis

// Change is one file-level edit to apply in a batch Update: either a
// full replacement of a file's contents (an intra-file edit, which the
// editor always sends as whole-document sync rather than diffs this
// layer would need to apply itself) or a create/delete.
type Change struct {
	URI     string
	Deleted bool
	Content string // ignored when Deleted
}

// Update applies a batch of file creates/deletes/replacements and
// rebuilds from scratch. There is no incremental re-checking below the
// level of "rebuild everything": a single changed file can change which
// `#use` edges exist, which in turn can reorder every other file's
// cross-file Import, so anything short of a full rebuild risks answering
// queries against stale cross-file state.
func (db *Db) Update(changes []Change) error {
	if db.sources == nil {
		db.sources = map[string]string{}
	}
	for _, c := range changes {
		if c.Deleted {
			delete(db.sources, c.URI)
			continue
		}
		db.sources[c.URI] = c.Content
	}
	return db.rebuild()
}

// EditFile replaces uriStr's contents wholesale and rebuilds, the way an
// editor's "document changed" notification is handled: the language
// client always resends full document text on sync, never a diff.
func (db *Db) EditFile(uriStr, content string) error {
	return db.Update([]Change{{URI: uriStr, Content: content}})
}
