package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, Rune, GetTheme("rune"))
	assert.Equal(t, Default, GetTheme("default"))
	assert.Equal(t, Default, GetTheme(""))
	assert.Equal(t, Default, GetTheme("nonsense"))
}

func TestGetItemGlyph(t *testing.T) {
	tests := []struct {
		name string
		item string
		want string
	}{
		{
			name: "curated fragment",
			item: "Death rune",
			want: "🔮",
		},
		{
			name: "bones wins over dragon",
			item: "Dragon bones",
			want: "🦴",
		},
		{
			name: "case insensitive",
			item: "RUNE PLATEBODY",
			want: "🔮",
		},
		{
			name: "fallback uses first letter",
			item: "Abyssal whip",
			want: "A",
		},
		{
			name: "empty name",
			item: "",
			want: "?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetItemGlyph(tt.item))
		})
	}
}

func TestGetItemGlyph_Deterministic(t *testing.T) {
	first := GetItemGlyph("Zulrah's scales")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, GetItemGlyph("Zulrah's scales"))
	}
}
