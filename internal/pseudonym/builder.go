// Package pseudonym assigns deterministic pseudonyms to event identifiers.
//
// One Table is built per run from the identifiers of all three bundles, so an
// identifier used by client, server and embedded-browser code resolves to the
// same pseudonym in each of them.
package pseudonym

// Builder accumulates a Table with insert-if-absent semantics.
type Builder struct {
	table *Table
	built bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{table: newTable()}
}

// Seed records a pseudonym for id ahead of Add. A later Add of the same id
// keeps the seeded value instead of hashing.
func (b *Builder) Seed(id, pseudonym string) {
	b.mustBeOpen()
	b.table.set(id, pseudonym)
}

// Add resolves each id in order. The table is consulted before every
// insertion so an existing pseudonym is never replaced by a new digest.
func (b *Builder) Add(ids ...string) {
	b.mustBeOpen()
	for _, id := range ids {
		p, ok := b.table.Lookup(id)
		if !ok {
			p = Digest(id)
		}
		b.table.set(id, p)
	}
}

// Table finishes the build. The Builder must not be used afterwards.
func (b *Builder) Table() *Table {
	b.built = true
	return b.table
}

func (b *Builder) mustBeOpen() {
	if b.built {
		panic("pseudonym: Builder used after Table()")
	}
}

// Build resolves the client, server and embedded identifier lists, in that
// order, into a single Table.
func Build(client, server, embedded []string) *Table {
	b := NewBuilder()
	b.Add(client...)
	b.Add(server...)
	b.Add(embedded...)
	return b.Table()
}
