package rewrite

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dyluth/evhash/internal/pseudonym"
)

func seededTable(pairs ...string) *pseudonym.Table {
	b := pseudonym.NewBuilder()
	for i := 0; i+1 < len(pairs); i += 2 {
		b.Seed(pairs[i], pairs[i+1])
	}
	return b.Table()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRewriteFile_ReplacesAcrossFiles(t *testing.T) {
	tmpDir := t.TempDir()
	table := seededTable("client:event1", "hash1", "server:event2", "hash2")
	content := `
            Some code with "client:event1" and "server:event2"
        `

	paths := []string{
		writeFile(t, tmpDir, "client_index_test.js", content),
		writeFile(t, tmpDir, "server_index_test.js", content),
	}

	r := NewRewriter(table)
	for _, path := range paths {
		outcome := r.RewriteFile(path)
		require.NoError(t, outcome.Err)
		assert.Equal(t, 2, outcome.Replacements)
		assert.True(t, outcome.Changed)
		assert.True(t, outcome.Written)

		got := readFile(t, path)
		assert.Contains(t, got, `"hash1"`)
		assert.Contains(t, got, `"hash2"`)
		assert.NotContains(t, got, "client:event1")
		assert.NotContains(t, got, "server:event2")
	}
}

func TestRewriteFile_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "index.js", `mp.events.add("client:login", onLogin);`)

	outcome := NewRewriter(seededTable("client:login", "deadbeef")).RewriteFile(path)
	require.NoError(t, outcome.Err)

	got := readFile(t, path)
	assert.Equal(t, `mp.events.add("deadbeef", onLogin);`, got)
}

func TestRewriteFile_NonMatchingContentIsByteIdentical(t *testing.T) {
	tmpDir := t.TempDir()
	original := "const a = \"player:join\";\r\n// ünïcödé\n\x00tail"
	path := writeFile(t, tmpDir, "index.js", original)

	outcome := NewRewriter(seededTable("client:login", "deadbeef")).RewriteFile(path)
	require.NoError(t, outcome.Err)
	assert.False(t, outcome.Changed)
	assert.True(t, outcome.Written)
	assert.Equal(t, 0, outcome.Replacements)
	assert.Equal(t, original, readFile(t, path))
}

func TestRewriteFile_MissingFile(t *testing.T) {
	outcome := NewRewriter(seededTable("client:a", "x")).RewriteFile(filepath.Join(t.TempDir(), "missing.js"))
	require.Error(t, outcome.Err)
	assert.True(t, errors.Is(outcome.Err, fs.ErrNotExist))
	assert.False(t, outcome.Written)
	assert.Contains(t, outcome.ErrMessage(), "failed to stat")
	assert.Contains(t, outcome.ErrMessage(), "missing.js")
}

func TestRewriteFile_WriteFailure(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	tmpDir := t.TempDir()
	original := `"client:a"`
	path := writeFile(t, tmpDir, "index.js", original)
	require.NoError(t, os.Chmod(path, 0444))

	outcome := NewRewriter(seededTable("client:a", "1")).RewriteFile(path)
	require.Error(t, outcome.Err)
	assert.True(t, errors.Is(outcome.Err, fs.ErrPermission))
	assert.Contains(t, outcome.ErrMessage(), "failed to write")
	assert.False(t, outcome.Written)
	assert.True(t, outcome.Changed)
	assert.Equal(t, 1, outcome.Replacements)
	assert.Equal(t, original, readFile(t, path))
}

func TestOutcome_ErrMessage(t *testing.T) {
	assert.Empty(t, Outcome{Path: "a.js", Written: true}.ErrMessage())
	assert.Equal(t, "boom", Outcome{Err: errors.New("boom")}.ErrMessage())
}

func TestRewriteFile_DryRunLeavesFile(t *testing.T) {
	tmpDir := t.TempDir()
	original := `"server:spawn"`
	path := writeFile(t, tmpDir, "index.js", original)

	outcome := NewRewriter(seededTable("server:spawn", "abc"), WithDryRun(true)).RewriteFile(path)
	require.NoError(t, outcome.Err)
	assert.True(t, outcome.Changed)
	assert.False(t, outcome.Written)
	assert.Equal(t, 1, outcome.Replacements)
	assert.Equal(t, original, readFile(t, path))
}

func TestRewriteFile_PreservesMode(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "index.js", `"client:a"`)
	require.NoError(t, os.Chmod(path, 0600))

	outcome := NewRewriter(seededTable("client:a", "1")).RewriteFile(path)
	require.NoError(t, outcome.Err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		table     *pseudonym.Table
		content   string
		want      string
		wantCount int
	}{
		{
			name:      "prefix identifier does not clobber longer one",
			table:     seededTable("client:a", "AAA", "client:ab", "BBB"),
			content:   `"client:ab" "client:a"`,
			want:      `"BBB" "AAA"`,
			wantCount: 2,
		},
		{
			name:      "longer identifier inserted first",
			table:     seededTable("client:ab", "BBB", "client:a", "AAA"),
			content:   `"client:a" "client:ab"`,
			want:      `"AAA" "BBB"`,
			wantCount: 2,
		},
		{
			name:      "pseudonym is not substituted again",
			table:     seededTable("client:x", "server:y", "server:y", "ZZZ"),
			content:   `"client:x" "server:y"`,
			want:      `"server:y" "ZZZ"`,
			wantCount: 2,
		},
		{
			name:      "unquoted occurrences are replaced too",
			table:     seededTable("server:c", "CCC"),
			content:   `const key = 'server:c'; // server:c`,
			want:      `const key = 'CCC'; // CCC`,
			wantCount: 2,
		},
		{
			name:      "regexp metacharacters in content are literal",
			table:     seededTable("client:a-b_c:d", "X"),
			content:   `"client:a-b_c:d" "client:aXb_c:d"`,
			want:      `"X" "client:aXb_c:d"`,
			wantCount: 1,
		},
		{
			name:      "empty table",
			table:     seededTable(),
			content:   `"client:a"`,
			want:      `"client:a"`,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, count := NewRewriter(tt.table).Apply(tt.content)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestApply_BuiltTableCrossFileConsistency(t *testing.T) {
	table := pseudonym.Build([]string{"client:a"}, []string{"server:c"}, []string{"server:c"})
	r := NewRewriter(table)

	server, _ := r.Apply(`emit("server:c")`)
	embedded, _ := r.Apply(`on("server:c", cb)`)

	want := pseudonym.Digest("server:c")
	assert.Equal(t, `emit("`+want+`")`, server)
	assert.Equal(t, `on("`+want+`", cb)`, embedded)
}
