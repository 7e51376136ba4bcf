package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two client events in order",
			text: `Some code with "client:event1:hejsan" and "client:event2:tjosan"`,
			want: []string{"client:event1:hejsan", "client:event2:tjosan"},
		},
		{
			name: "client and server mixed",
			text: `mp.events.add("server:login", f); mp.events.callRemote("client:hud-update_2")`,
			want: []string{"server:login", "client:hud-update_2"},
		},
		{
			name: "duplicates preserved",
			text: `"client:a" "client:a" "server:b"`,
			want: []string{"client:a", "client:a", "server:b"},
		},
		{
			name: "prefix only",
			text: `emit("client:")`,
			want: []string{"client:"},
		},
		{
			name: "match inside comment still counts",
			text: `// call "server:secret" later`,
			want: []string{"server:secret"},
		},
		{
			name: "dots are outside the class",
			text: `"client:ui.open" "server:ok"`,
			want: []string{"server:ok"},
		},
		{
			name: "case sensitive prefix",
			text: `"Client:x" "SERVER:y"`,
			want: []string{},
		},
		{
			name: "single quotes ignored",
			text: `'client:single'`,
			want: []string{},
		},
		{
			name: "no matches",
			text: `console.log("hello world")`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestDistinct(t *testing.T) {
	got := Distinct([]string{"server:b", "client:a", "server:b", "client:a", "server:c"})
	assert.Equal(t, []string{"server:b", "client:a", "server:c"}, got)
	assert.Empty(t, Distinct(nil))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("client:login"))
	assert.True(t, IsIdentifier("server:a:b-c_d"))
	assert.False(t, IsIdentifier("client:ui.open"))
	assert.False(t, IsIdentifier("player:join"))
	assert.False(t, IsIdentifier("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"))
}
