package pseudonym

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestLength is the length of a freshly computed pseudonym.
const DigestLength = sha256.Size * 2

// Digest returns the lowercase hex SHA-256 of id's bytes.
func Digest(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// Entry is a single identifier and the pseudonym assigned to it.
type Entry struct {
	Identifier string `json:"identifier"`
	Pseudonym  string `json:"pseudonym"`
}

// Table maps identifiers to pseudonyms. A Table returned by Build or
// Builder.Table is read-only.
type Table struct {
	entries map[string]string
	order   []string
}

func newTable() *Table {
	return &Table{entries: make(map[string]string)}
}

// Lookup returns the pseudonym for id.
func (t *Table) Lookup(id string) (string, bool) {
	p, ok := t.entries[id]
	return p, ok
}

// Len returns the number of distinct identifiers.
func (t *Table) Len() int {
	return len(t.entries)
}

// Identifiers returns identifiers in first-insertion order.
func (t *Table) Identifiers() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns all entries in first-insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, Entry{Identifier: id, Pseudonym: t.entries[id]})
	}
	return out
}

func (t *Table) set(id, pseudonym string) {
	if _, exists := t.entries[id]; !exists {
		t.order = append(t.order, id)
	}
	t.entries[id] = pseudonym
}
