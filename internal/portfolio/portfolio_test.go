package portfolio

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSample(t *testing.T) {
	doc, err := Load("testdata/portfolio.yml")
	require.NoError(t, err)

	assert.Equal(t, "Dana | Portfolio Hub", doc.System.DocumentTitle)
	assert.Len(t, doc.TopPanels, 2)
	require.Len(t, doc.ServiceSections, 1)

	cards := doc.ServiceSections[0].Groups[0].Cards
	require.Len(t, cards, 2)
	assert.Len(t, cards[0].Links, 2)
	assert.Empty(t, cards[1].Links)
	assert.Equal(t, []Link{{Label: "LEARN MORE", Href: "https://example.com/shop"}}, CardLinks(cards[1]))
	assert.Equal(t, "2023.05 - 2023.06", cards[1].SubtitleText())
	assert.Equal(t, "Solo build from auth to deployment.", cards[1].DescriptionText())
}

func TestDecodeEmptyDocument(t *testing.T) {
	doc, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.ServiceSections)

	want := []NavItem{
		{Label: "SYSTEM_ARCHITECTURE", Target: "#system-architecture"},
		{Label: "SKILL_SET", Target: "#skill-set"},
		{Label: "CONTACT", Target: "#contact"},
	}
	if diff := cmp.Diff(want, doc.NavItems()); diff != "" {
		t.Errorf("NavItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"metrics not a list", "hero:\n  metrics: 5\n"},
		{"diagram source not a string", "diagrams:\n  a:\n    - x\n"},
		{"flowchart flag not a bool", "mermaid:\n  flowchart:\n    useMaxWidth: sometimes\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Fatalf("Decode() error = %v, want ErrInvalidDocument", err)
			}
		})
	}
}

func TestDecodeRejectsDuplicateSections(t *testing.T) {
	src := `
serviceSections:
  - id: work
  - id: work
`
	_, err := Decode(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrDuplicateSection)
}

func TestNormalizeFoldsFlatCards(t *testing.T) {
	doc := &Document{ServiceSections: []ServiceSection{{
		ID:    "legacy",
		Cards: []Card{{Title: "A", LearnMore: "#"}, {Title: "B", LearnMore: "https://b.example", LinkLabel: "READ"}},
	}}}
	doc.Normalize()

	s := doc.ServiceSections[0]
	assert.Nil(t, s.Cards)
	require.Len(t, s.Groups, 1)
	assert.Empty(t, s.Groups[0].Title)
	assert.Empty(t, CardLinks(s.Groups[0].Cards[0]))
	assert.Equal(t, []Link{{Label: "READ", Href: "https://b.example"}}, CardLinks(s.Groups[0].Cards[1]))
}

func TestCardVideoIgnoresLearnMore(t *testing.T) {
	doc, err := Decode(strings.NewReader(`
serviceSections:
  - id: work
    cards:
      - title: Demo
        learnMore: "https://youtu.be/dQw4w9WgXcQ"
      - title: Linked
        links:
          - label: WATCH
            href: "https://youtu.be/dQw4w9WgXcQ"
`))
	require.NoError(t, err)

	cards := doc.ServiceSections[0].Groups[0].Cards
	assert.Empty(t, cards[0].Video().Hrefs)
	assert.Len(t, CardLinks(cards[0]), 1, "learnMore still renders as a link")
	assert.Equal(t, []string{"https://youtu.be/dQw4w9WgXcQ"}, cards[1].Video().Hrefs)
}

func TestCardLinksDropsEmptyHref(t *testing.T) {
	c := Card{Links: []Link{{Label: "X"}, {Label: "Y", Href: "/y"}}, LearnMore: "/ignored"}
	assert.Equal(t, []Link{{Label: "Y", Href: "/y"}}, CardLinks(c))
}

func TestNavItemsDerived(t *testing.T) {
	doc, err := Load("testdata/portfolio.yml")
	require.NoError(t, err)

	want := []NavItem{
		{Label: "PORTFOLIO_HUB_OVERVIEW", Target: "#hub-overview"},
		{Label: "PROJECT_HUB", Target: "#project-hub"},
		{Label: "COMPARE", Target: "#cross-project-comparison"},
		{Label: "DELIVERY_TIMELINE", Target: "#top-panel-2"},
		{Label: "SKILL_SET", Target: "#skills"},
		{Label: "CONTACT", Target: "#contact"},
	}
	if diff := cmp.Diff(want, doc.NavItems()); diff != "" {
		t.Errorf("NavItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestNavItemsExplicit(t *testing.T) {
	doc := &Document{Navigation: []NavItem{
		{Label: "WORK", Target: "work"},
		{Label: "TOP", Target: "#top"},
		{Label: "NOWHERE"},
	}}
	want := []NavItem{
		{Label: "WORK", Target: "#work"},
		{Label: "TOP", Target: "#top"},
		{Label: "NOWHERE", Target: "#"},
	}
	if diff := cmp.Diff(want, doc.NavItems()); diff != "" {
		t.Errorf("NavItems() mismatch (-want +got):\n%s", diff)
	}
}

func TestNavItemsSectionWithoutID(t *testing.T) {
	doc := &Document{ServiceSections: []ServiceSection{{}}}
	items := doc.NavItems()
	require.Len(t, items, 4)
	assert.Equal(t, NavItem{Label: "SERVICES", Target: "#"}, items[1])
}

func TestEngineConfigMerge(t *testing.T) {
	off := false
	doc := &Document{Mermaid: &MermaidSettings{
		Theme:     "neutral",
		Flowchart: &FlowchartSettings{HTMLLabels: &off},
	}}
	got := doc.EngineConfig()

	want := DefaultEngineConfig()
	want.Theme = "neutral"
	want.Flowchart.HTMLLabels = false
	assert.Equal(t, want, got)
	assert.Contains(t, got.JSON(), `"curve":"linear"`)
}

func TestEngineConfigDefaults(t *testing.T) {
	doc := &Document{}
	assert.Equal(t, DefaultEngineConfig(), doc.EngineConfig())
}

func TestVideoSources(t *testing.T) {
	c := Card{YouTubeURL: "https://youtu.be/abc", Links: []Link{{Href: "/a"}}}
	assert.Equal(t, VideoSource{URL: "https://youtu.be/abc", Hrefs: []string{"/a"}}, c.Video())
}
