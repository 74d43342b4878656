package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/shorts/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube-nocookie.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/channel/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"  dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
		{"https://example.com/video", ""},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"https://youtu.be/short", ""},
		{"https://www.youtube.com/watch?v=tooshort", ""},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractID(tt.input))
		})
	}
}

func TestResolveOrder(t *testing.T) {
	const (
		idA = "AAAAAAAAAAA"
		idB = "BBBBBBBBBBB"
		idC = "CCCCCCCCCCC"
	)

	assert.Equal(t, idA, Resolve(idA, "https://youtu.be/"+idB, "https://youtu.be/"+idC))
	assert.Equal(t, idB, Resolve("", "https://youtu.be/"+idB, "https://youtu.be/"+idC))
	assert.Equal(t, idC, Resolve("", "", "https://github.com/x", "https://youtu.be/"+idC))
	assert.Equal(t, idB, Resolve("garbage", "https://youtu.be/"+idB))
	assert.Equal(t, "", Resolve("", "", "https://github.com/x"))
}

func TestResolveIsDeterministic(t *testing.T) {
	links := []string{"https://ramyo564.github.io/x", "https://www.youtube.com/watch?v=TD6FPndjhoE"}
	first := Resolve("", "", links...)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Resolve("", "", links...))
	}
	assert.Equal(t, "TD6FPndjhoE", first)
}

func TestEmbedURL(t *testing.T) {
	modal := EmbedURL("dQw4w9WgXcQ", ModalPlayback)
	assert.True(t, strings.HasPrefix(modal, "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?"))
	assert.Contains(t, modal, "autoplay=1&mute=0&controls=1")
	assert.Contains(t, modal, "loop=0")
	assert.NotContains(t, modal, "playlist=")

	preview := EmbedURL("dQw4w9WgXcQ", HoverPreview)
	assert.Contains(t, preview, "autoplay=1&mute=1&controls=0")
	assert.Contains(t, preview, "loop=1&playlist=dQw4w9WgXcQ")
}
