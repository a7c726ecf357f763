// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package passage orchestrates the red-letter pipeline: fetch the
// reference edition, build per-verse direct-speech masks, then fetch
// each target edition and transfer the masks onto its verses.
package passage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pdiddy/redletter/internal/gateway"
	"github.com/pdiddy/redletter/internal/mask"
	"github.com/pdiddy/redletter/internal/quote"
	"github.com/pdiddy/redletter/internal/render"
	"github.com/pdiddy/redletter/pkg/types"
)

// Options control how a target edition is rendered.
type Options struct {
	// VerseNumbers prepends the verse (or chapter) number tag to each
	// verse.
	VerseNumbers bool

	// RedLetter enables mask transfer from the reference edition. When
	// false no reference fetch happens and verses render as extracted.
	RedLetter bool
}

// Request names the work for one FetchAll run.
type Request struct {
	Passages []string
	Editions []string
	Options  Options
}

// Pipeline wires the gateway to the analysis core.
type Pipeline struct {
	Client *gateway.Client
	Log    *zap.Logger
}

// New builds a pipeline. A nil logger is replaced with a no-op one.
func New(client *gateway.Client, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{Client: client, Log: log}
}

// AnalyzeReference fetches the passage in the reference edition and
// builds one mask per verse. Verses that produce an empty mask (no
// quotations, not mostly direct speech) are dropped from the map so
// lookups on the target side miss cleanly.
func (p *Pipeline) AnalyzeReference(ctx context.Context, passage string, tr *Trace) (map[string]mask.VerseMask, error) {
	refEd := p.Client.Config.ReferenceEdition

	doc, err := p.Client.FetchPassage(ctx, passage, refEd)
	if err != nil {
		return nil, err
	}
	verses, err := gateway.ExtractReference(doc)
	if err != nil {
		return nil, fmt.Errorf("extracting %s (%s): %w", passage, refEd, err)
	}

	p.Log.Debug("analyzed reference passage",
		zap.String("passage", passage),
		zap.String("edition", refEd),
		zap.Int("verses", len(verses)))

	masks := make(map[string]mask.VerseMask, len(verses))
	labels := make([]string, 0, len(verses))
	for label := range verses {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		v := verses[label]
		m := mask.Build(strings.TrimSpace(v.PlainText), v.DirectText)
		if len(m) == 0 {
			continue
		}
		masks[label] = m
		tr.Printf("[%s %s] mask: %s", refEd, label, describeMask(m))
	}
	return masks, nil
}

// Render fetches one target edition of the passage and assembles its
// HTML, transferring masks onto verses where possible. Verses whose
// transfer fails render uncolored; only fetch and extraction problems
// are errors.
func (p *Pipeline) Render(ctx context.Context, passage, edition string, masks map[string]mask.VerseMask, opts Options, tr *Trace) (types.RenderedPassage, error) {
	doc, err := p.Client.FetchPassage(ctx, passage, edition)
	if err != nil {
		return types.RenderedPassage{}, err
	}
	tp, err := gateway.ExtractTarget(doc)
	if err != nil {
		return types.RenderedPassage{}, fmt.Errorf("extracting %s (%s): %w", passage, edition, err)
	}

	var parts []string
	done := make(map[string]bool)
	for _, piece := range tp.Pieces {
		if piece.Header {
			parts = append(parts, render.HeaderGap)
			continue
		}
		if done[piece.Label] {
			continue
		}
		done[piece.Label] = true

		v, ok := tp.Verses[piece.Label]
		if !ok {
			continue
		}

		content := v.HTML
		if opts.RedLetter {
			content = p.colorVerse(edition, v, masks, tr)
		}
		if opts.VerseNumbers && v.NumText != "" {
			content = render.VerseNumberHTML(v.NumText, v.ChapterNum) + content
		}
		parts = append(parts, content)
	}

	ref := tp.Ref
	if ref == "" {
		ref = strings.TrimSpace(passage)
	}
	p.Log.Debug("rendered passage",
		zap.String("passage", ref),
		zap.String("edition", edition),
		zap.Int("verses", len(tp.Verses)))
	return types.RenderedPassage{
		Ref:     ref,
		Edition: edition,
		HTML:    render.TidyWhitespace(strings.Join(parts, " ")),
	}, nil
}

// colorVerse applies the mask for one verse, returning the verse HTML
// unchanged whenever coloring cannot proceed.
func (p *Pipeline) colorVerse(edition string, v *gateway.TargetVerse, masks map[string]mask.VerseMask, tr *Trace) string {
	if v.HasNativeRed {
		tr.Printf("[%s %s] native red letters, kept as-is", edition, v.Label)
		return v.HTML
	}

	m, direct := masks[v.Label]
	if !direct {
		var ok bool
		if m, ok = mask.Resolve(v.Label, masks); !ok {
			return v.HTML
		}
		tr.Printf("[%s %s] combined range mask: %s", edition, v.Label, describeMask(m))
	}

	plain := render.PlainText(v.HTML)
	res := mask.Transfer(plain, m)
	if !res.OK() {
		tr.Printf("[%s %s] skipped (%s: %s)", edition, v.Label, res.Reason, res.Detail)
		return v.HTML
	}

	tr.Printf("[%s %s] colored %s", edition, v.Label, describeColors(res.Colors, res.WholeVerse))
	return render.Recolor(v.HTML, quote.Tokenize(plain), res.Colors, res.WholeVerse)
}

// FetchAll runs the full request: one reference analysis per passage
// (when red letters are on), then every (edition, passage) pair in
// order. Failures degrade per item; the returned blocks always cover
// the whole request, with failed passages carrying an inline error
// message, and the aggregate error lists everything that went wrong.
func (p *Pipeline) FetchAll(ctx context.Context, req Request, tr *Trace) ([]types.EditionBlock, error) {
	var errs error

	refMasks := make(map[string]map[string]mask.VerseMask)
	if req.Options.RedLetter {
		for _, pass := range req.Passages {
			masks, err := p.AnalyzeReference(ctx, pass, tr)
			if err != nil {
				tr.Printf("[%s %s] analysis failed: %v", p.Client.Config.ReferenceEdition, pass, err)
				errs = multierr.Append(errs, fmt.Errorf("analyzing %s: %w", pass, err))
				continue
			}
			refMasks[pass] = masks
		}
	}

	blocks := make([]types.EditionBlock, 0, len(req.Editions))
	first := true
	for _, edition := range req.Editions {
		block := types.EditionBlock{Edition: edition}
		for _, pass := range req.Passages {
			if !first {
				if err := p.pause(ctx); err != nil {
					return blocks, multierr.Append(errs, err)
				}
			}
			first = false

			rp, err := p.Render(ctx, pass, edition, refMasks[pass], req.Options, tr)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s (%s): %w", pass, edition, err))
				rp = types.RenderedPassage{
					Ref:     strings.TrimSpace(pass),
					Edition: edition,
					HTML:    fmt.Sprintf("An error occurred fetching this passage in %s.", edition),
				}
			}
			block.Passages = append(block.Passages, rp)
		}
		blocks = append(blocks, block)
	}

	return blocks, errs
}

// pause sleeps the configured request delay, honoring cancellation.
func (p *Pipeline) pause(ctx context.Context) error {
	delay := p.Client.Config.RequestDelay
	if delay <= 0 {
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func describeMask(m mask.VerseMask) string {
	parts := make([]string, len(m))
	for i, e := range m {
		switch {
		case e.WholeVerseImplicit:
			parts[i] = "whole-verse"
		case e.DirectSpeech:
			parts[i] = "red"
		default:
			parts[i] = "plain"
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func describeColors(colors []bool, wholeVerse bool) string {
	if wholeVerse {
		return "whole verse"
	}
	red := 0
	for _, c := range colors {
		if c {
			red++
		}
	}
	return fmt.Sprintf("%d of %d quotation span(s)", red, len(colors))
}
