package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectDocument returns the first existing portfolio document in the
// working directory, or the default name.
func detectDocument() (path string, found bool) {
	for _, candidate := range documentCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return DefaultConfig().Document, false
}

// WizardIO redirects the wizard's prompts. Nil fields use the terminal.
type WizardIO struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string, wio WizardIO) (*Config, error) {
	out := io.Writer(os.Stdout)
	if wio.Stdout != nil {
		out = wio.Stdout
	}
	fmt.Fprintln(out, "Welcome to folio! Let's configure your portfolio site.")
	fmt.Fprintln(out)

	cfg := DefaultConfig()

	document, found := detectDocument()
	if found {
		fmt.Fprintf(out, "Found portfolio document: %s\n\n", document)
	}

	// 1. Document path.
	documentPrompt := promptui.Prompt{
		Label:   "Portfolio document",
		Default: document,
		Stdin:   wio.Stdin,
		Stdout:  wio.Stdout,
	}
	doc, err := documentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("document path: %w", err)
	}
	cfg.Document = strings.TrimSpace(doc)

	// 2. Diagram engine.
	enginePrompt := promptui.Select{
		Label: "Render diagrams",
		Items: []string{
			"client: in the visitor's browser",
			"chrome: to inline SVG at build time (needs Chrome)",
		},
		Stdin:  wio.Stdin,
		Stdout: wio.Stdout,
	}
	engineIdx, _, err := enginePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("engine selection: %w", err)
	}
	cfg.Engine = []EngineType{EngineClient, EngineChrome}[engineIdx]

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
		Stdin:   wio.Stdin,
		Stdout:  wio.Stdout,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	cfg.OutputDir = strings.TrimSpace(outputDir)

	// 4. Preview port.
	portPrompt := promptui.Prompt{
		Label:   "Preview server port",
		Default: strconv.Itoa(cfg.Serve.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("enter a port between 0 and 65535")
			}
			return nil
		},
		Stdin:  wio.Stdin,
		Stdout: wio.Stdout,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Serve.Port, _ = strconv.Atoi(portStr)

	// 5. Extra watch globs.
	watchPrompt := promptui.Prompt{
		Label:  "Extra watch patterns (comma-separated, leave blank for defaults)",
		Stdin:  wio.Stdin,
		Stdout: wio.Stdout,
	}
	watchStr, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch patterns: %w", err)
	}
	cfg.Serve.Watch = append(cfg.Serve.Watch, splitAndTrim(watchStr)...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
