package portfolio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Starter("Dana Reyes").Encode(&buf))
	assert.NotContains(t, buf.String(), "null")

	doc, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, "DANA_REYES_PORTFOLIO", doc.System.SystemName)
	assert.Equal(t, "dark", doc.EngineConfig().Theme)
	assert.Contains(t, doc.Diagrams["system-overview"], `s2["PROJECTS<br/>#projects"]`)

	ids := []string{doc.Hero.DiagramID}
	for _, s := range doc.ServiceSections {
		for _, g := range s.Groups {
			for _, c := range g.Cards {
				ids = append(ids, c.MermaidID)
			}
		}
	}
	for _, id := range ids {
		src, ok := doc.Diagrams[id]
		require.True(t, ok, "diagram %q not registered", id)
		assert.True(t, strings.HasPrefix(src, "graph "), "diagram %q: %s", id, src)
	}
}

func TestStarterDefaultOwner(t *testing.T) {
	doc := Starter("  ")
	assert.Equal(t, "Your Name | Portfolio", doc.System.DocumentTitle)
	require.NoError(t, doc.Validate())
}
