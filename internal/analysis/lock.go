package analysis

// Lock and Unlock exist purely so an embedding server can hold exclusive
// access to a Db across an entire build-then-query sequence. Db itself
// assumes single-owner, single-threaded use — no method locks internally
// — so a server driving it from more than one goroutine (an LSP server
// fielding requests concurrently with file-change notifications, say)
// must take Lock before calling any method and Unlock once its whole
// sequence of calls is done; nothing here enforces that discipline, it
// only provides the mutex to hold it with.
func (db *Db) Lock() {
	db.mu.Lock()
}

func (db *Db) Unlock() {
	db.mu.Unlock()
}
