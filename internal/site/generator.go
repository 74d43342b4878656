package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/folio/internal/config"
	"github.com/ziadkadry99/folio/internal/diagrams"
	"github.com/ziadkadry99/folio/internal/dom"
	"github.com/ziadkadry99/folio/internal/modal"
	"github.com/ziadkadry99/folio/internal/page"
	"github.com/ziadkadry99/folio/internal/portfolio"
	"github.com/ziadkadry99/folio/internal/progress"
	"github.com/ziadkadry99/folio/internal/scrollspy"
	"github.com/ziadkadry99/folio/internal/video"
)

// Files written into the output directory.
const (
	IndexFile  = "index.html"
	StyleFile  = "style.css"
	ScriptFile = "script.js"
)

// BuildMetaName is the meta tag carrying the build identifier.
const BuildMetaName = "folio-build"

// Generator turns a portfolio document into a static site.
type Generator struct {
	Config   *config.Config
	Logger   *zap.Logger
	Reporter progress.Reporter
	// Engine overrides the engine selected by Config.Engine.
	Engine diagrams.Engine
	// LiveReload makes the runtime connect to the preview server.
	LiveReload bool
	// NewBuildID defaults to a random UUID.
	NewBuildID func() string
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{Config: cfg, Logger: logger}
}

// Result is one rendered page.
type Result struct {
	BuildID  string
	Document *portfolio.Document
	Host     *dom.Document
	Page     *page.Page
	// Files lists written paths. Empty after Render.
	Files []string
}

// shellData holds the data passed to the default host page template.
type shellData struct {
	Title      string
	SystemName string
}

// runtimeConfig is embedded in the page for script.js.
type runtimeConfig struct {
	Mermaid     portfolio.EngineConfig `json:"mermaid"`
	Analytics   bool                   `json:"analytics"`
	DataLayer   string                 `json:"dataLayer"`
	LiveReload  bool                   `json:"liveReload"`
	PreviewHint string                 `json:"previewHint"`
	ScrollSpy   runtimeScrollSpy       `json:"scrollSpy"`
}

type runtimeScrollSpy struct {
	HeaderSelector string `json:"headerSelector"`
	Lookahead      int    `json:"lookahead"`
	Checkpoints    []int  `json:"checkpoints"`
}

// Render loads the document and bootstraps it into the host page without
// writing anything.
func (g *Generator) Render(ctx context.Context) (*Result, error) {
	logger := g.logger()
	cfg := g.Config

	doc, err := portfolio.Load(cfg.Document)
	if err != nil {
		return nil, err
	}

	var registry diagrams.Registry
	if cfg.Diagrams != "" {
		registry, err = diagrams.LoadRegistry(cfg.Diagrams)
		if err != nil {
			return nil, err
		}
	}

	host, err := g.shell(doc)
	if err != nil {
		return nil, err
	}

	engine, closeEngine := g.engine(doc)
	defer closeEngine()

	p, err := page.Bootstrap(ctx, host, doc, page.Options{
		Logger:   logger,
		Markdown: cfg.Markdown,
		Registry: registry,
		Engine:   engine,
		Reporter: g.Reporter,
		ScrollSpy: scrollspy.Options{
			HeaderSelector: cfg.ScrollSpy.HeaderSelector,
			Lookahead:      float64(cfg.ScrollSpy.Lookahead),
			Checkpoints:    cfg.ScrollSpy.Checkpoints(),
		},
		Layout:    newFlowLayout(host),
		Scheduler: dom.NewLoop(),
	})
	if err != nil {
		return nil, err
	}

	decorateVideoTargets(host)

	newID := g.NewBuildID
	if newID == nil {
		newID = uuid.NewString
	}
	res := &Result{BuildID: newID(), Document: doc, Host: host, Page: p}
	g.injectAssets(res)
	return res, nil
}

// Build renders the page and writes index.html, its assets and the optional
// assets directory into the output directory.
func (g *Generator) Build(ctx context.Context) (*Result, error) {
	res, err := g.Render(ctx)
	if err != nil {
		return nil, err
	}

	out := g.Config.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := res.Host.Render(&buf); err != nil {
		return nil, fmt.Errorf("serializing page: %w", err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{IndexFile, buf.Bytes()},
		{StyleFile, []byte(cssContent)},
		{ScriptFile, []byte(jsContent)},
	}
	for _, f := range files {
		path := filepath.Join(out, f.name)
		if err := os.WriteFile(path, f.data, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		res.Files = append(res.Files, path)
	}

	if dir := g.Config.Assets; dir != "" {
		if err := copyDir(dir, filepath.Join(out, filepath.Base(dir))); err != nil {
			return nil, fmt.Errorf("copying assets: %w", err)
		}
	}

	g.logger().Info("site built",
		zap.String("build", res.BuildID),
		zap.String("output", out),
		zap.Int("diagrams", len(res.Page.Diagrams.Outcomes)),
		zap.Int("diagram_failures", len(res.Page.Diagrams.Failed())),
	)
	return res, nil
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// shell returns the host page: the configured file, or the default page.
func (g *Generator) shell(doc *portfolio.Document) (*dom.Document, error) {
	if path := g.Config.Shell; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading shell %s: %w", path, err)
		}
		defer f.Close()
		host, err := dom.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing shell %s: %w", path, err)
		}
		return host, nil
	}

	tmpl, err := template.New("shell").Parse(shellTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, shellData{
		Title:      firstNonEmpty(doc.System.DocumentTitle, "Portfolio"),
		SystemName: firstNonEmpty(doc.System.SystemName, "PORTFOLIO"),
	}); err != nil {
		return nil, fmt.Errorf("executing shell template: %w", err)
	}
	return dom.Parse(&buf)
}

// engine picks the diagram engine. The returned func releases it.
func (g *Generator) engine(doc *portfolio.Document) (diagrams.Engine, func()) {
	if g.Engine != nil {
		return g.Engine, func() {}
	}
	if g.Config.Engine != config.EngineChrome {
		return diagrams.ClientEngine{}, func() {}
	}
	chrome := diagrams.NewChromeEngine(diagrams.ChromeOptions{
		Bin:     g.Config.Chrome.Bin,
		Timeout: g.Config.Chrome.Timeout(),
		Config:  doc.EngineConfig(),
		Logger:  g.logger(),
	})
	return chrome, func() {
		if err := chrome.Close(); err != nil {
			g.logger().Warn("closing browser", zap.Error(err))
		}
	}
}

// decorateVideoTargets records the player URLs on every video-linked diagram
// container so the browser runtime does not rebuild them.
func decorateVideoTargets(host *dom.Document) {
	for _, target := range host.QueryAll("[" + modal.VideoAttr + "]") {
		id := dom.AttrOr(target, modal.VideoAttr, "")
		if id == "" {
			continue
		}
		dom.SetAttr(target, "data-youtube-preview-src", video.EmbedURL(id, video.HoverPreview))
		dom.SetAttr(target, "data-youtube-modal-src", video.EmbedURL(id, video.ModalPlayback))
	}
}

// injectAssets adds the build stamp, stylesheet, runtime config and scripts
// to the page head.
func (g *Generator) injectAssets(res *Result) {
	head := res.Host.Query("head")
	if head == nil {
		g.logger().Warn("host page has no head; assets not linked")
		return
	}
	cfg := g.Config
	version := res.BuildID
	if len(version) > 8 {
		version = version[:8]
	}

	meta := dom.Element("meta", "")
	dom.SetAttr(meta, "name", BuildMetaName)
	dom.SetAttr(meta, "content", res.BuildID)

	style := dom.Element("link", "")
	dom.SetAttr(style, "rel", "stylesheet")
	dom.SetAttr(style, "href", StyleFile+"?v="+version)

	rc := runtimeConfig{
		Mermaid:     res.Document.EngineConfig(),
		Analytics:   cfg.Analytics.Enabled,
		DataLayer:   firstNonEmpty(cfg.Analytics.DataLayer, "dataLayer"),
		LiveReload:  g.LiveReload,
		PreviewHint: modal.PreviewHint,
		ScrollSpy: runtimeScrollSpy{
			HeaderSelector: cfg.ScrollSpy.HeaderSelector,
			Lookahead:      cfg.ScrollSpy.Lookahead,
			Checkpoints:    cfg.ScrollSpy.CheckpointsMS,
		},
	}
	data, err := json.Marshal(rc)
	if err != nil {
		data = []byte("{}")
	}
	configScript := dom.TextElement("script", "", string(data))
	dom.SetAttr(configScript, "id", "folio-config")
	dom.SetAttr(configScript, "type", "application/json")

	dom.Append(head, meta, style, configScript)

	if hasDeferred(res.Page.Diagrams) {
		engineScript := dom.Element("script", "")
		dom.SetAttr(engineScript, "src", diagrams.DefaultScriptURL)
		dom.Append(head, engineScript)
	}

	runtime := dom.Element("script", "")
	dom.SetAttr(runtime, "src", ScriptFile+"?v="+version)
	dom.SetAttr(runtime, "defer", "")
	dom.Append(head, runtime)
}

func hasDeferred(r diagrams.Report) bool {
	for _, o := range r.Outcomes {
		if o.Deferred {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
