package diagrams

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// DefaultScriptURL is the mermaid bundle loaded into the rendering page.
const DefaultScriptURL = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"

// ChromeOptions configures a ChromeEngine.
type ChromeOptions struct {
	// Bin is the browser binary. Empty lets the launcher find or download one.
	Bin string
	// ControlURL connects to an already running browser instead of launching.
	ControlURL string
	// Timeout bounds each render call.
	Timeout time.Duration
	// ScriptURL overrides DefaultScriptURL.
	ScriptURL string
	// Config is passed to mermaid.initialize.
	Config any
	Logger *zap.Logger
}

// ChromeEngine renders mermaid to SVG inside a headless Chrome page, so the
// written page ships finished vector output.
type ChromeEngine struct {
	opts   ChromeOptions
	logger *zap.Logger

	// launch starts a local browser and returns its control URL and a func
	// that kills it.
	launch func() (string, func(), error)

	mu      sync.Mutex
	browser *rod.Browser
	page    *rod.Page
	kill    func()
	seq     int
}

var nonIDChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// NewChromeEngine returns an engine that starts the browser lazily on first
// render.
func NewChromeEngine(opts ChromeOptions) *ChromeEngine {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.ScriptURL == "" {
		opts.ScriptURL = DefaultScriptURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &ChromeEngine{opts: opts, logger: logger}
	e.launch = e.launchLocal
	return e
}

func (e *ChromeEngine) launchLocal() (string, func(), error) {
	l := launcher.New().Headless(true)
	if e.opts.Bin != "" {
		l = l.Bin(e.opts.Bin)
	}
	u, err := l.Launch()
	if err != nil {
		return "", nil, err
	}
	return u, func() {
		l.Kill()
		l.Cleanup()
	}, nil
}

// Start launches or connects to the browser and prepares the rendering page.
func (e *ChromeEngine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.startLocked(ctx)
}

func (e *ChromeEngine) startLocked(ctx context.Context) error {
	if e.page != nil {
		return nil
	}

	controlURL := e.opts.ControlURL
	kill := func() {}
	if controlURL == "" {
		u, k, err := e.launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		controlURL, kill = u, k
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		kill()
		return fmt.Errorf("connect to chrome: %w", err)
	}
	fail := func(format string, args ...any) error {
		_ = browser.Close()
		kill()
		return fmt.Errorf(format, args...)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fail("open render page: %w", err)
	}
	if err := page.SetDocumentContent(`<!DOCTYPE html><html><head></head><body></body></html>`); err != nil {
		return fail("prepare render page: %w", err)
	}
	if err := page.AddScriptTag(e.opts.ScriptURL, ""); err != nil {
		return fail("load mermaid from %s: %w", e.opts.ScriptURL, err)
	}
	if _, err := page.Evaluate(&rod.EvalOptions{
		JS:     `(cfg) => { mermaid.initialize(Object.assign({}, cfg || {}, { startOnLoad: false })); }`,
		JSArgs: []interface{}{e.opts.Config},
	}); err != nil {
		return fail("initialize mermaid: %w", err)
	}

	e.kill = kill
	e.browser = browser
	e.page = page
	e.logger.Debug("chrome diagram engine ready", zap.String("control_url", controlURL))
	return nil
}

// Render returns the SVG markup mermaid produced for source.
func (e *ChromeEngine) Render(ctx context.Context, id, source string) (string, error) {
	if err := CheckSource(source); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.startLocked(ctx); err != nil {
		return "", err
	}

	e.seq++
	renderID := fmt.Sprintf("folio-%s-%d", nonIDChars.ReplaceAllString(id, "-"), e.seq)

	callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	res, err := e.page.Context(callCtx).Evaluate(&rod.EvalOptions{
		JS: `async (id, src) => {
			const out = await mermaid.render(id, src);
			return out.svg;
		}`,
		JSArgs:       []interface{}{renderID, source},
		ByValue:      true,
		AwaitPromise: true,
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	svg := res.Value.Str()
	if svg == "" {
		return "", fmt.Errorf("render %s: %w", id, ErrEmptySource)
	}
	return svg, nil
}

// Close shuts the browser down.
func (e *ChromeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	err := e.browser.Close()
	if e.kill != nil {
		e.kill()
	}
	e.browser = nil
	e.page = nil
	e.kill = nil
	return err
}
