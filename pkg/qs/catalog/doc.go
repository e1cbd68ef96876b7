// Package catalog provides the thread-safe, ordered catalogue of actions
// assembled from every loaded config file.
//
// Config files are added in priority order. The first registration of an
// action name wins; the same name in a lower priority file is shadowed:
//
//	c := catalog.FromFiles(local, sourceRoot, userDefault)
//	entry, ok := c.Get("search")
//	if ok {
//	    out, err := template.Render(entry.Template, vars.Merge(entry.Vars, cli))
//	}
//
// # Thread Safety
//
// All Catalog methods are safe for concurrent use. Range iterates over a
// snapshot, so it is safe to call Add during iteration.
package catalog
