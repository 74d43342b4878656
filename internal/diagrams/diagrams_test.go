package diagrams

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/folio/internal/dom"
)

func TestSafeLabel(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"ledger-architecture", "ledger-architecture"},
		{"  a/b::c  ", "a b c"},
		{"hero map!", "hero map"},
		{"", "unknown"},
		{"!!!", "unknown"},
	}
	for _, tt := range tests {
		if got := SafeLabel(tt.id); got != tt.want {
			t.Errorf("SafeLabel(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestRegistrySource(t *testing.T) {
	r := Registry{"a": "graph TD\nX-->Y", "blank": "  "}
	if got := r.Source("a"); got != "graph TD\nX-->Y" {
		t.Errorf("Source(a) = %q", got)
	}
	if got := r.Source("blank"); got != PlaceholderSource("blank") {
		t.Errorf("Source(blank) = %q, want placeholder", got)
	}
	if got := r.Source("x y"); got != "graph TD\nA[x y] --> B[Define diagrams entry]" {
		t.Errorf("Source(x y) = %q", got)
	}
}

func TestRegistryMerge(t *testing.T) {
	base := Registry{"a": "1", "b": "2"}
	merged := base.Merge(map[string]string{"b": "3", "c": "4"})
	assert.Equal(t, Registry{"a": "1", "b": "3", "c": "4"}, merged)
	assert.Equal(t, "2", base["b"], "Merge must not modify the receiver")
	assert.Equal(t, []string{"a", "b", "c"}, merged.IDs())
}

func TestLoadRegistry(t *testing.T) {
	r, err := LoadRegistry("testdata/registry.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"hero-map", "ledger"}, r.IDs())
	assert.True(t, strings.HasPrefix(r["ledger"], "graph LR"))
}

func TestLoadRegistryMissing(t *testing.T) {
	_, err := LoadRegistry("testdata/nope.yml")
	assert.Error(t, err)
}

func TestCheckSource(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{"graph", "graph TD\nA-->B", false},
		{"flowchart with directive", "%%{init: {}}%%\nflowchart LR\nA-->B", false},
		{"front matter", "---\ntitle: x\n---\nsequenceDiagram\nA->>B: hi", false},
		{"pie with title", "pie title Pets\n\"Dogs\" : 3", false},
		{"unknown", "grahp TD\nA-->B", true},
		{"empty", "  \n\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckSource(tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckSource() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
	assert.ErrorIs(t, CheckSource(""), ErrEmptySource)
}

func TestParseViewBox(t *testing.T) {
	tests := []struct {
		raw    string
		w, h   float64
		wantOK bool
	}{
		{"0 0 640 480", 640, 480, true},
		{"-8,-8,100.5,50", 100.5, 50, true},
		{"0 0 0 480", 0, 0, false},
		{"0 0 640", 0, 0, false},
		{"a b c d", 0, 0, false},
	}
	for _, tt := range tests {
		w, h, ok := ParseViewBox(tt.raw)
		if ok != tt.wantOK || w != tt.w || h != tt.h {
			t.Errorf("ParseViewBox(%q) = %v, %v, %v; want %v, %v, %v", tt.raw, w, h, ok, tt.w, tt.h, tt.wantOK)
		}
	}
}

const page = `<html><body>
<div class="mermaid" data-mermaid-id="good"></div>
<div class="mermaid" data-mermaid-id="broken"></div>
<div class="mermaid" data-mermaid-id="missing thing"></div>
</body></html>`

func fakeEngine(calls *[]string) Engine {
	return EngineFunc(func(ctx context.Context, id, source string) (string, error) {
		*calls = append(*calls, id)
		if id == "broken" {
			return "", errors.New("parse error on line 2")
		}
		return `<svg viewBox="0 0 200 100" width="200" height="100"><g></g></svg>`, nil
	})
}

func TestAdapterRunIsolatesFailures(t *testing.T) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	var calls []string
	a := &Adapter{
		Registry: Registry{"good": "graph TD\nA-->B", "broken": "graph TD\nA-->"},
		Engine:   fakeEngine(&calls),
	}
	report, err := a.Run(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"good", "broken", "missing thing"}, calls)
	assert.Equal(t, []string{"missing thing"}, report.Placeholders())
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "broken", report.Failed()[0].ID)

	containers := doc.QueryAll(ContainerSelector)
	w, h, ok := ViewBox(RenderedSVG(containers[0]))
	assert.True(t, ok)
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)
	assert.Equal(t, "true", dom.AttrOr(containers[0], "data-processed", ""))

	assert.Nil(t, RenderedSVG(containers[1]))
	assert.Equal(t, "Diagram render failed: broken", strings.TrimSpace(dom.Text(containers[1])))

	assert.NotNil(t, RenderedSVG(containers[2]))
	assert.Equal(t, "true", dom.AttrOr(containers[2], "data-diagram-placeholder", ""))
}

func TestAdapterClientEngineDefers(t *testing.T) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	a := &Adapter{Registry: Registry{"good": "graph TD\nA-->B", "broken": "nonsense"}}
	report, err := a.Run(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 3)
	assert.True(t, report.Outcomes[0].Deferred)
	assert.Error(t, report.Outcomes[1].Err)
	assert.True(t, report.Outcomes[2].Deferred)

	containers := doc.QueryAll(ContainerSelector)
	assert.Equal(t, "graph TD\nA-->B", dom.Text(containers[0]))
	assert.Contains(t, dom.Text(containers[2]), "A[missing thing]")
}

func TestAdapterStopsOnCancel(t *testing.T) {
	doc, err := dom.ParseString(page)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	a := &Adapter{
		Registry: Registry{},
		Engine: EngineFunc(func(ctx context.Context, id, source string) (string, error) {
			calls++
			cancel()
			return "", ctx.Err()
		}),
	}
	_, err = a.Run(ctx, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestChain(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		steps     []Step
		want      string
	}{
		{
			name:      "sequential",
			direction: "LR",
			steps:     []Step{{Label: "Ingest", Note: "S3 <raw>"}, {Label: "Transform"}, {Label: "Publish"}},
			want: "graph LR\n" +
				"    s1[\"Ingest<br/>S3 #lt;raw#gt;\"]\n" +
				"    s2[\"Transform\"]\n" +
				"    s3[\"Publish\"]\n" +
				"    s1 --> s2\n" +
				"    s2 --> s3\n",
		},
		{
			name:      "fan out with labels",
			direction: "sideways",
			steps: []Step{
				{Label: `API "v2"`, Next: []string{"DB", "Queue", "nowhere"}, Via: "a|b"},
				{Label: "Queue", Next: []string{"DB"}},
				{Label: "DB"},
			},
			want: "graph TD\n" +
				"    s1[\"API #quot;v2#quot;\"]\n" +
				"    s2[\"Queue\"]\n" +
				"    s3[\"DB\"]\n" +
				"    s1 -->|a#124;b| s3\n" +
				"    s1 -->|a#124;b| s2\n" +
				"    s2 --> s3\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chain(tt.direction, tt.steps...)
			if got != tt.want {
				t.Errorf("Chain() =\n%s\nwant\n%s", got, tt.want)
			}
			if err := CheckSource(got); err != nil {
				t.Errorf("generated source rejected: %v", err)
			}
		})
	}
}

func TestAdapterContainerWithoutID(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><div class="mermaid" id="hero"></div></body></html>`)
	require.NoError(t, err)

	a := &Adapter{Registry: Registry{"good": "graph TD\nA-->B"}}
	report, err := a.Run(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []string{""}, report.Placeholders())
	hero := doc.ByID("hero")
	assert.Equal(t, "true", dom.AttrOr(hero, "data-diagram-placeholder", ""))
	assert.Contains(t, dom.Text(hero), "A[unknown]")
}

func TestChromeEngineKillsBrowserWhenConnectFails(t *testing.T) {
	e := NewChromeEngine(ChromeOptions{})
	killed := 0
	e.launch = func() (string, func(), error) {
		return "ws://127.0.0.1:1/devtools/browser/none", func() { killed++ }, nil
	}

	err := e.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to chrome")
	assert.Equal(t, 1, killed)
	assert.NoError(t, e.Close())
}

func TestChromeEngineLaunchFailure(t *testing.T) {
	e := NewChromeEngine(ChromeOptions{})
	e.launch = func() (string, func(), error) {
		return "", nil, errors.New("no browser")
	}
	err := e.Start(context.Background())
	assert.EqualError(t, err, "launch chrome: no browser")
}
