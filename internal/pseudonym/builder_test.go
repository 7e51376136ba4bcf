package pseudonym

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	// sha256("abc")
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", Digest("abc"))

	d := Digest("client:login")
	assert.Len(t, d, DigestLength)
	assert.Equal(t, d, Digest("client:login"))
	assert.NotEqual(t, d, Digest("client:logout"))

	sum := sha256.Sum256([]byte("server:event4:hejsan"))
	assert.Equal(t, hex.EncodeToString(sum[:]), Digest("server:event4:hejsan"))
}

func TestBuild_FillsFromAllSources(t *testing.T) {
	table := Build(
		[]string{"client:event1:hejsan", "client:event2:tjosan"},
		[]string{"server:event3", "server:event4:hejsan"},
		[]string{"server:event5", "server:event6:hejsan"},
	)

	assert.Equal(t, 6, table.Len())
	for _, id := range []string{"client:event1:hejsan", "server:event4:hejsan", "server:event6:hejsan"} {
		p, ok := table.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, Digest(id), p)
	}
}

func TestBuild_SharedIdentifierCollapses(t *testing.T) {
	table := Build(
		[]string{"client:a"},
		[]string{"server:b", "server:c"},
		[]string{"server:c"},
	)

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"client:a", "server:b", "server:c"}, table.Identifiers())
}

func TestBuild_SixOccurrencesFourIdentifiers(t *testing.T) {
	table := Build(
		[]string{"client:a", "client:a"},
		[]string{"server:b", "server:c"},
		[]string{"server:c", "client:d"},
	)

	assert.Equal(t, 4, table.Len())
	p, ok := table.Lookup("server:c")
	require.True(t, ok)
	assert.Equal(t, Digest("server:c"), p)
}

func TestBuild_Empty(t *testing.T) {
	table := Build(nil, nil, nil)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Entries())
}

func TestBuilder_SeededPseudonymIsKept(t *testing.T) {
	b := NewBuilder()
	b.Seed("client:login", "deadbeef")
	b.Add("client:login", "server:login", "client:login")
	table := b.Table()

	p, ok := table.Lookup("client:login")
	require.True(t, ok)
	assert.Equal(t, "deadbeef", p)

	p, ok = table.Lookup("server:login")
	require.True(t, ok)
	assert.Equal(t, Digest("server:login"), p)
	assert.Equal(t, 2, table.Len())
}

func TestBuilder_ReinsertDoesNotChangePseudonym(t *testing.T) {
	b := NewBuilder()
	b.Add("server:c")
	first, _ := b.table.Lookup("server:c")
	b.Add("server:c", "server:c")
	second, _ := b.table.Lookup("server:c")
	assert.Equal(t, first, second)
	assert.Equal(t, []Entry{{Identifier: "server:c", Pseudonym: first}}, b.Table().Entries())
}

func TestBuilder_PanicsAfterTable(t *testing.T) {
	b := NewBuilder()
	b.Table()
	assert.Panics(t, func() { b.Add("client:x") })
}

func TestTable_IdentifiersIsACopy(t *testing.T) {
	table := Build([]string{"client:a"}, nil, nil)
	ids := table.Identifiers()
	ids[0] = "mutated"
	assert.Equal(t, []string{"client:a"}, table.Identifiers())
}
