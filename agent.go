package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"markestedt/polishclip/config"
	"markestedt/polishclip/platform"
	"markestedt/polishclip/postprocess"
	"markestedt/polishclip/rephrase"
	"markestedt/polishclip/session"
	"markestedt/polishclip/storage"
	"markestedt/polishclip/web"
)

// Fixed global hotkeys
const (
	comboPolish = "ctrl+shift+p"
	comboCycle  = "ctrl+shift+]"
	comboQuit   = "ctrl+shift+q"
)

// Agent coordinates hotkey detection, clipboard access, and rephrasing
type Agent struct {
	cfg       *config.Config
	hotkey    platform.Hotkey
	clipboard platform.Clipboard
	paster    platform.Paster
	provider  rephrase.Provider
	pipeline  *postprocess.Pipeline
	session   *session.Session

	// Optional collaborators, nil in one-shot mode and in tests
	db   *storage.DB
	web  *web.Server
	tray Tray
}

// Tray is the subset of the systray manager the agent listens on
type Tray interface {
	PolishRequests() <-chan struct{}
	CycleRequests() <-chan struct{}
	WaitForQuit() <-chan struct{}
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config, provider rephrase.Provider, db *storage.DB, srv *web.Server, tray Tray) *Agent {
	return &Agent{
		cfg:       cfg,
		hotkey:    platform.NewHotkey(),
		clipboard: platform.NewClipboard(),
		paster:    platform.NewPaster(),
		provider:  provider,
		pipeline:  postprocess.Cleanup(),
		session:   &session.Session{},
		db:        db,
		web:       srv,
		tray:      tray,
	}
}

// hotkeyBindings parses the three fixed combos into platform bindings
func hotkeyBindings() ([]platform.Binding, error) {
	combos := []struct {
		combo  string
		action platform.Action
	}{
		{comboPolish, platform.ActionPolish},
		{comboCycle, platform.ActionCycle},
		{comboQuit, platform.ActionQuit},
	}

	var bindings []platform.Binding
	for _, c := range combos {
		kc, err := config.ParseHotkey(c.combo)
		if err != nil {
			return nil, fmt.Errorf("failed to parse hotkey %q: %w", c.combo, err)
		}

		vkCode, err := platform.VKCode(kc.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to get VK code for %q: %w", c.combo, err)
		}

		bindings = append(bindings, platform.Binding{
			Combo: platform.KeyCombo{
				Ctrl:  kc.Ctrl,
				Shift: kc.Shift,
				Alt:   kc.Alt,
				Win:   kc.Win,
				Key:   vkCode,
			},
			Action: c.action,
		})
	}

	return bindings, nil
}

// Run starts the agent's main event loop. Events are handled strictly one at
// a time: a polish request blocks the loop until the provider call finishes,
// so session state never sees concurrent access.
func (a *Agent) Run(ctx context.Context) error {
	bindings, err := hotkeyBindings()
	if err != nil {
		return err
	}

	events, err := a.hotkey.Listen(ctx, bindings)
	if err != nil {
		return fmt.Errorf("failed to start hotkey listener: %w", err)
	}

	slog.Info("PolishClip started",
		"provider", a.provider.Name(),
		"tone", a.cfg.Polish.Tone,
		"alternatives", a.cfg.Polish.Alternatives,
		"temperature", a.cfg.Polish.Temperature)
	slog.Info("Hotkeys registered",
		"polish", comboPolish, "next", comboCycle, "quit", comboQuit)

	// Receiving on a nil channel blocks forever, which is exactly what we
	// want when no tray is attached
	var trayPolish, trayCycle, trayQuit <-chan struct{}
	if a.tray != nil {
		trayPolish = a.tray.PolishRequests()
		trayCycle = a.tray.CycleRequests()
		trayQuit = a.tray.WaitForQuit()
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-trayQuit:
			slog.Info("Quitting")
			return nil

		case <-trayPolish:
			a.polishFromClipboard(ctx, storage.TriggerTray)

		case <-trayCycle:
			a.cycleSuggestion()

		case evt := <-events:
			switch evt.Action {
			case platform.ActionPolish:
				a.polishFromClipboard(ctx, storage.TriggerHotkey)
			case platform.ActionCycle:
				a.cycleSuggestion()
			case platform.ActionQuit:
				slog.Info("Quitting")
				return nil
			}
		}
	}
}

// polishFromClipboard reads the clipboard, requests alternatives from the
// provider, and puts the first one back on the clipboard. A re-press while
// our own suggestion is still on the clipboard is treated as a cycle
// request, so the polish hotkey doubles as "next" after a polish.
func (a *Agent) polishFromClipboard(ctx context.Context, trigger string) {
	src, err := a.clipboard.Get()
	if err != nil {
		slog.Error("Failed to read clipboard", "error", err)
		return
	}

	if strings.TrimSpace(src) == "" {
		slog.Info("Clipboard is empty. Copy some text first.")
		return
	}

	if cur, ok := a.session.Current(); ok && strings.TrimSpace(src) == strings.TrimSpace(cur) {
		a.cycleSuggestion()
		return
	}

	clean := truncate(strings.TrimSpace(src), a.cfg.Polish.MaxChars)
	n := a.cfg.Polish.Alternatives
	tone := a.cfg.Polish.Tone

	slog.Info("Polishing", "chars", len([]rune(clean)), "tone", tone, "alternatives", n)
	a.setStatus("polishing")
	defer a.setStatus("idle")

	start := time.Now()
	alternatives, err := a.provider.Rephrase(ctx, clean, n, tone, a.cfg.Polish.Temperature)
	latency := time.Since(start)

	if err != nil {
		slog.Error("Polish failed", "error", err)
		recordPolish(a.db, a.cfg, a.provider.Name(), trigger, clean, 0, latency, err)
		return
	}

	alternatives = a.pipeline.ProcessAll(ctx, clean, alternatives)
	a.session.SetAlternatives(clean, alternatives)

	first, _ := a.session.Current()
	if err := a.clipboard.Set(first); err != nil {
		slog.Error("Failed to write clipboard", "error", err)
		return
	}

	_, total := a.session.Position()
	slog.Info("Copied polished text to clipboard",
		"position", fmt.Sprintf("1/%d", total), "text", first)

	recordPolish(a.db, a.cfg, a.provider.Name(), trigger, clean, len(alternatives), latency, nil)
	a.broadcastSuggestion(false)
	a.autoPaste()
}

// cycleSuggestion advances to the next alternative, wrapping around after
// the last one
func (a *Agent) cycleSuggestion() {
	next, ok := a.session.Next()
	if !ok {
		slog.Info("No suggestions to cycle. Trigger a polish first.")
		return
	}

	if err := a.clipboard.Set(next); err != nil {
		slog.Error("Failed to write clipboard", "error", err)
		return
	}

	cur, total := a.session.Position()
	slog.Info("Copied next suggestion",
		"position", fmt.Sprintf("%d/%d", cur, total), "text", next)

	a.broadcastSuggestion(true)
	a.autoPaste()
}

// polishText rephrases the given text once and returns the result. Used by
// the one-shot CLI path: provider failures are logged and the (truncated)
// input comes back unchanged, never an error. Each call leaves a cli-trigger
// metrics row when a database is attached.
func polishText(ctx context.Context, provider rephrase.Provider, pipeline *postprocess.Pipeline, cfg *config.Config, db *storage.DB, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	text = truncate(text, cfg.Polish.MaxChars)

	start := time.Now()
	results, err := provider.Rephrase(ctx, text, 1, cfg.Polish.Tone, cfg.Polish.Temperature)
	latency := time.Since(start)

	if err != nil {
		slog.Error("Polish failed", "error", err)
		recordPolish(db, cfg, provider.Name(), storage.TriggerCLI, text, 0, latency, err)
		return text
	}

	results = pipeline.ProcessAll(ctx, text, results)
	recordPolish(db, cfg, provider.Name(), storage.TriggerCLI, text, len(results), latency, nil)
	return results[0]
}

// truncate cuts text to limit characters, appending a marker when anything
// was dropped
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}

// autoPaste simulates Ctrl+V when enabled, so the suggestion lands directly
// in the focused application
func (a *Agent) autoPaste() {
	if !a.cfg.Polish.AutoPaste || a.paster == nil {
		return
	}

	// Give the clipboard a moment to settle
	time.Sleep(50 * time.Millisecond)

	if err := a.paster.Paste(); err != nil {
		slog.Warn("Failed to paste", "error", err)
	}
}

// recordPolish stores usage metrics. Failures here never affect the polish
// result.
func recordPolish(db *storage.DB, cfg *config.Config, providerName, trigger, input string, alternatives int, latency time.Duration, callErr error) {
	if db == nil {
		return
	}

	rec := &storage.Polish{
		Trigger:      trigger,
		Provider:     providerName,
		Model:        cfg.Provider.Model,
		Tone:         cfg.Polish.Tone,
		InputChars:   len([]rune(input)),
		Alternatives: alternatives,
		LatencyMs:    latency.Milliseconds(),
		Success:      callErr == nil,
	}
	if callErr != nil {
		rec.ErrorMessage = callErr.Error()
	}

	if err := db.SavePolish(rec); err != nil {
		slog.Warn("Failed to record polish metrics", "error", err)
	}
}

func (a *Agent) setStatus(status string) {
	if a.web == nil {
		return
	}

	cur, total := a.session.Position()
	a.web.SetState(web.State{Status: status, Position: cur, Total: total})
}

func (a *Agent) broadcastSuggestion(cycled bool) {
	if a.web == nil {
		return
	}

	cur, total := a.session.Position()
	a.web.BroadcastSuggestion(cur, total, len([]rune(a.session.Source())), cycled)
}
