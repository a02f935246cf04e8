// Package nav assembles the navbar model from the configured entries.
package nav

import (
	"log/slog"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/linkverify"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Item is one rendered navbar entry.
type Item struct {
	Label    string
	Position config.NavPosition
	// Target is the doc id for doc items and the href otherwise.
	Target linkverify.Target
	// Doc marks items declared by doc id rather than href.
	Doc bool
}

// Model is the assembled navbar. Items holds every entry, left group first.
type Model struct {
	Items         []Item
	OnBrokenLinks config.BrokenLinkPolicy
}

type options struct {
	policy config.BrokenLinkPolicy
	logger *slog.Logger
}

// Option customises AssembleNav.
type Option func(*options)

// WithBrokenLinkPolicy forwards the site policy to the generator. The
// assembler itself never resolves doc ids.
func WithBrokenLinkPolicy(p config.BrokenLinkPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// AssembleNav orders entries into the navbar model: every left entry, then
// every right entry, each group keeping its declared order. No entry is
// dropped.
func AssembleNav(entries []config.NavEntry, opts ...Option) Model {
	o := options{policy: config.BrokenLinksThrow, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	left := make([]Item, 0, len(entries))
	var right []Item
	for _, e := range entries {
		item := Item{Label: e.Label, Position: e.Position}
		if e.DocID != "" {
			item.Target = linkverify.Target{Raw: e.DocID, Kind: linkverify.TargetInternal}
			item.Doc = true
		} else {
			item.Target = linkverify.Classify(e.Href)
		}
		if e.Position == config.NavRight {
			right = append(right, item)
		} else {
			item.Position = config.NavLeft
			left = append(left, item)
		}
	}

	m := Model{Items: append(left, right...), OnBrokenLinks: o.policy}
	o.logger.Debug("Navigation assembled", logfields.Count(len(m.Items)), logfields.Policy(string(o.policy)))
	return m
}

// Left returns the left-aligned items in order.
func (m Model) Left() []Item { return m.filter(config.NavLeft) }

// Right returns the right-aligned items in order.
func (m Model) Right() []Item { return m.filter(config.NavRight) }

func (m Model) filter(pos config.NavPosition) []Item {
	var out []Item
	for _, it := range m.Items {
		if it.Position == pos {
			out = append(out, it)
		}
	}
	return out
}

// MenuEntry is one Hugo menu.main item.
type MenuEntry struct {
	Identifier string            `yaml:"identifier"`
	Name       string            `yaml:"name"`
	PageRef    string            `yaml:"pageRef,omitempty"`
	URL        string            `yaml:"url,omitempty"`
	Weight     int               `yaml:"weight"`
	Params     map[string]string `yaml:"params,omitempty"`
}

// HugoMenu renders the model as Hugo menu entries. Doc ids and internal hrefs
// become pageRef values (resolved and checked by Hugo), external links become
// url values flagged with the "external" param. Weights encode the assembled
// order.
func (m Model) HugoMenu() []MenuEntry {
	out := make([]MenuEntry, 0, len(m.Items))
	for i, it := range m.Items {
		entry := MenuEntry{
			Identifier: identifier(it.Label, i),
			Name:       it.Label,
			Weight:     (i + 1) * 10,
			Params:     map[string]string{"position": string(it.Position)},
		}
		switch {
		case it.Doc:
			entry.PageRef = DocPageRef(it.Target.Raw)
		case it.Target.IsInternal():
			entry.PageRef = it.Target.Raw
		default:
			entry.URL = it.Target.Raw
			entry.Params["external"] = "true"
		}
		out = append(out, entry)
	}
	return out
}

func identifier(label string, i int) string {
	id := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, label)
	id = strings.Trim(id, "-")
	if id == "" {
		id = "item"
	}
	return id + "-" + strconv.Itoa(i)
}

// DocPageRef maps a doc id such as "infra/ai-ml/index" to the Hugo page
// reference of the docs section ("/docs/infra/ai-ml").
func DocPageRef(docID string) string {
	id := strings.Trim(docID, "/")
	for _, suffix := range []string{"_index", "index"} {
		if id == suffix {
			id = ""
		}
		id = strings.TrimSuffix(id, "/"+suffix)
	}
	if id == "" {
		return "/docs"
	}
	return "/docs/" + id
}
