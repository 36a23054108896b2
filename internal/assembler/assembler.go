// Package assembler turns generated summary lines into ordered facts. It
// runs two passes over the lines: a classification pass that peels off note
// lines, routing override lines, and exec-change headers, then a grouping
// fold over the remaining lines driven by the article's parse style.
package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/coverage-cli/internal/model"
	"github.com/sells-group/coverage-cli/internal/router"
	"github.com/sells-group/coverage-cli/internal/taxonomy"
)

// ErrNoFacts is returned in strict mode when non-empty generator output
// yields no parseable facts.
var ErrNoFacts = eris.New("assembler: no facts parsed from summary")

// Options tune assembly behavior.
type Options struct {
	// Strict fails on degenerate output instead of synthesizing a fallback
	// fact from the headline.
	Strict bool
	// UnprefixedExecNotes lets bare follow-on lines attach to exec-change
	// facts without a "Note:" prefix.
	UnprefixedExecNotes bool
}

// Input is everything assembly needs for one article: the cleaned generator
// lines plus the classification context that fills fact defaults.
type Input struct {
	Lines        []string
	Style        router.ParseStyle
	CategoryPath string
	Section      string
	Subheading   string
	Company      string
	Quarter      string
	PublishedAt  model.Date
	// Headline feeds the fallback fact when no line parses.
	Headline string
}

// Assembler builds facts from summary lines.
type Assembler struct {
	opts Options
}

// New returns an Assembler with the given options.
func New(opts Options) *Assembler {
	return &Assembler{opts: opts}
}

const execChangesPath = "Org -> Exec Changes"

// labelMap maps leading bullet labels to canonical subheadings.
var labelMap = map[string]string{
	"greenlights":   "Greenlights",
	"greenlight":    "Greenlights",
	"renewals":      "Renewals",
	"renewal":       "Renewals",
	"development":   "Development",
	"pickup":        "Pickups",
	"pickups":       "Pickups",
	"cancellations": "Cancellations",
	"cancellation":  "Cancellations",
	"dating":        "Dating",
	"exec changes":  "Exec Changes",
	"exec change":   "Exec Changes",
	"general":       taxonomy.GeneralSubheading,
}

// Override line patterns. Separators may be ":" or "-".
var (
	explicitPathRe = regexp.MustCompile(`(?i)^\s*(.+?->.+?)\s*[:-]\s*(.+?)\s*$`)

	contentRoutedRe = regexp.MustCompile(`(?i)^\s*` +
		`(tv|film|specials|international|sports|podcasts)\s+` +
		`(gns|general\s+news\s*&\s*strategy|development|greenlights|pickups|dating|renewals|cancellations)\s*` +
		`[:-]\s*(.+?)\s*$`)

	maRoutedRe = regexp.MustCompile(`(?i)^\s*(m\s*&\s*a|m&a)\s*` +
		`(?:gns|general\s+news\s*&\s*strategy)?\s*[:-]\s*(.+?)\s*$`)

	irRoutedRe = regexp.MustCompile(`(?i)^\s*(ir|investor\s+relations)\s+` +
		`(quarterly\s+earnings|earnings|company\s+materials|news\s+coverage|` +
		`ir\s+conferences|analyst\s+perspective|gns|general\s+news\s*&\s*strategy)\s*` +
		`[:-]\s*(.+?)\s*$`)

	strategySubRoutedRe = regexp.MustCompile(`(?i)^\s*(strategy|strategy\s*&\s*miscellaneous\s+news)\s+` +
		`(strategy|misc\.\s*news|misc\s+news|gns|general\s+news\s*&\s*strategy)\s*` +
		`[:-]\s*(.+?)\s*$`)

	strategyBareRoutedRe = regexp.MustCompile(`(?i)^\s*(strategy|strategy\s*&\s*miscellaneous\s+news)\s*[:-]\s*(.+?)\s*$`)

	highlightsRoutedRe = regexp.MustCompile(`(?i)^\s*highlights\s*[:-]\s*(.+?)\s*$`)
)

var mediumLabels = map[string]string{
	"tv":            "TV",
	"film":          "Film",
	"specials":      "Specials",
	"international": "International",
	"sports":        "Sports",
	"podcasts":      "Podcasts",
}

// override is one parsed routing override line.
type override struct {
	path    string
	payload string
	gns     bool
}

// Assemble builds the ordered fact list for one article. Emission order is
// exec-change facts, then base facts, then routed override facts, then
// grouped GNS facts. Fact IDs are assigned fact-1..n over the final order.
func (a *Assembler) Assemble(in Input) ([]model.Fact, error) {
	cleaned := make([]string, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l = strings.TrimSpace(l); l != "" {
			cleaned = append(cleaned, l)
		}
	}

	var (
		execFacts   []*model.Fact
		routedFacts []*model.Fact
		remaining   []string
		gnsLines    = map[string][]string{}
		gnsOrder    []string
		noteTarget  *model.Fact
		gnsTarget   string
	)

	for _, line := range cleaned {
		if payload, ok := parseNoteLine(line); ok {
			switch {
			case noteTarget != nil:
				if payload != "" {
					noteTarget.SummaryBullets = append(noteTarget.SummaryBullets, payload)
				}
			case gnsTarget != "":
				if payload != "" {
					gnsLines[gnsTarget] = append(gnsLines[gnsTarget], payload)
				}
			case payload != "":
				remaining = append(remaining, payload)
			}
			continue
		}

		routed := parseOverride(line)

		// Bare follow-on lines without a colon attach to the pending fact
		// instead of starting a new one. Exec-change facts only accept them
		// in unprefixed note mode.
		if routed == nil && !strings.Contains(line, ":") && !isExecChangeLine(line) {
			if noteTarget != nil && (noteTarget.CategoryPath != execChangesPath || a.opts.UnprefixedExecNotes) {
				noteTarget.SummaryBullets = append(noteTarget.SummaryBullets, line)
				continue
			}
			if gnsTarget != "" {
				gnsLines[gnsTarget] = append(gnsLines[gnsTarget], line)
				continue
			}
		}

		noteTarget = nil
		gnsTarget = ""

		if routed != nil {
			if routed.gns {
				if _, seen := gnsLines[routed.path]; !seen {
					gnsOrder = append(gnsOrder, routed.path)
				}
				gnsLines[routed.path] = append(gnsLines[routed.path], routed.payload)
				gnsTarget = routed.path
				continue
			}
			section, subheading := taxonomy.ParsePath(routed.path)
			fact := a.newFact(in, routed.path, section, subheading, routed.payload)
			routedFacts = append(routedFacts, fact)
			noteTarget = fact
			continue
		}

		if isExecChangeLine(line) {
			section, subheading := taxonomy.ParsePath(execChangesPath)
			fact := a.newFact(in, execChangesPath, section, subheading, line)
			execFacts = append(execFacts, fact)
			noteTarget = fact
			continue
		}

		remaining = append(remaining, line)
	}

	var baseFacts []*model.Fact
	switch {
	case a.isInterview(in, remaining):
		baseFacts = a.foldInterview(in, remaining)
	case a.isContentList(in):
		baseFacts = a.foldContentList(in, remaining)
	default:
		baseFacts = a.foldGeneral(in, remaining)
	}

	facts := make([]*model.Fact, 0, len(execFacts)+len(baseFacts)+len(routedFacts)+len(gnsOrder))
	facts = append(facts, execFacts...)
	facts = append(facts, baseFacts...)
	facts = append(facts, routedFacts...)
	for _, path := range gnsOrder {
		lines := gnsLines[path]
		if len(lines) == 0 {
			continue
		}
		section, subheading := taxonomy.ParsePath(path)
		fact := a.newFact(in, path, section, subheading, lines[0])
		fact.SummaryBullets = append([]string(nil), lines...)
		facts = append(facts, fact)
	}

	if len(facts) == 0 {
		if a.opts.Strict {
			return nil, eris.Wrapf(ErrNoFacts, "assembler: %d summary lines", len(cleaned))
		}
		facts = append(facts, a.fallbackFact(in))
	}

	out := make([]model.Fact, len(facts))
	for i, f := range facts {
		f.FactID = fmt.Sprintf("fact-%d", i+1)
		out[i] = *f
	}
	return out, nil
}

func (a *Assembler) isInterview(in Input, remaining []string) bool {
	if len(remaining) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(remaining[0]))
	if strings.HasPrefix(first, "interview:") || strings.HasPrefix(first, "commentary:") {
		return true
	}
	return in.Style == router.StyleInterview
}

func (a *Assembler) isContentList(in Input) bool {
	if in.Style == router.StyleContentList {
		return true
	}
	if taxonomy.IsContentList(in.Section, in.Subheading) {
		return true
	}
	if in.Section != taxonomy.SectionContent {
		return false
	}
	lower := strings.ToLower(in.CategoryPath)
	for _, token := range []string{"development", "greenlights", "pickups", "dating", "renewals", "cancellations"} {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// foldInterview collapses the whole summary into one fact whose header is the
// first line and whose bullets are every line.
func (a *Assembler) foldInterview(in Input, remaining []string) []*model.Fact {
	fact := a.newFact(in, in.CategoryPath, in.Section, in.Subheading, remaining[0])
	fact.SummaryBullets = append([]string(nil), remaining...)
	return []*model.Fact{fact}
}

// foldContentList starts a fact on every title item and attaches at most one
// note line to it; extra note lines coalesce into the existing note.
func (a *Assembler) foldContentList(in Input, remaining []string) []*model.Fact {
	var facts []*model.Fact
	var current *model.Fact
	for _, text := range remaining {
		if payload, ok := parseNoteLine(text); ok && current != nil {
			if payload != "" {
				attachListNote(current, payload)
			}
			continue
		}
		if current == nil || looksLikeTitleItem(text) {
			current = a.newFact(in, in.CategoryPath, in.Section, in.Subheading, text)
			facts = append(facts, current)
			continue
		}
		attachListNote(current, text)
	}
	return facts
}

// foldGeneral emits one fact per line, honoring leading labels like
// "Greenlights: ..." by rewriting the subheading.
func (a *Assembler) foldGeneral(in Input, remaining []string) []*model.Fact {
	var facts []*model.Fact
	var current *model.Fact
	for _, raw := range remaining {
		if payload, ok := parseNoteLine(raw); ok {
			if current != nil && payload != "" {
				current.SummaryBullets = append(current.SummaryBullets, payload)
				continue
			}
			raw = payload
		}
		if strings.TrimSpace(raw) == "" {
			continue
		}
		label, content := labelFromBullet(raw)
		path, section, subheading := buildFactCategory(in.CategoryPath, label)
		current = a.newFact(in, path, section, subheading, content)
		facts = append(facts, current)
	}
	return facts
}

func (a *Assembler) newFact(in Input, path, section, subheading, content string) *model.Fact {
	return &model.Fact{
		CategoryPath:   path,
		Section:        section,
		Subheading:     subheading,
		Company:        in.Company,
		Quarter:        in.Quarter,
		PublishedAt:    in.PublishedAt,
		ContentLine:    content,
		SummaryBullets: []string{content},
	}
}

// fallbackFact synthesizes a single fact when parsing produced none, so every
// processed article leaves at least one record entry.
func (a *Assembler) fallbackFact(in Input) *model.Fact {
	var content string
	for _, l := range in.Lines {
		if l = strings.TrimSpace(l); l != "" {
			content = l
			break
		}
	}
	if content == "" {
		content = strings.TrimSpace(in.Headline)
	}
	if content == "" {
		content = "Summary unavailable."
	}

	path := in.CategoryPath
	if path == "" {
		path = "Strategy & Miscellaneous News -> General News & Strategy"
	}
	section, subheading := taxonomy.ParsePath(path)
	if subheading == "" {
		subheading = taxonomy.GeneralSubheading
	}
	return a.newFact(in, path, section, subheading, content)
}

// attachListNote keeps list facts at one note bullet, folding extras into it.
func attachListNote(fact *model.Fact, text string) {
	if len(fact.SummaryBullets) < 2 {
		fact.SummaryBullets = append(fact.SummaryBullets, text)
		return
	}
	last := strings.TrimRight(fact.SummaryBullets[len(fact.SummaryBullets)-1], " \t")
	fact.SummaryBullets[len(fact.SummaryBullets)-1] = strings.TrimSpace(last + " " + text)
}

// parseNoteLine strips a "Note:" style prefix, accepting colon, hyphen, and
// dash separators. The second value reports whether the line was a note.
func parseNoteLine(text string) (string, bool) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.HasPrefix(lowered, "note:"):
		_, rest, _ := strings.Cut(text, ":")
		return strings.TrimSpace(rest), true
	case strings.HasPrefix(lowered, "note -"):
		_, rest, _ := strings.Cut(text, "-")
		return strings.TrimSpace(rest), true
	case strings.HasPrefix(lowered, "note—"), strings.HasPrefix(lowered, "note–"):
		if _, rest, ok := strings.Cut(text, "—"); ok {
			return strings.TrimSpace(rest), true
		}
		_, rest, _ := strings.Cut(text, "–")
		return strings.TrimSpace(rest), true
	}
	return "", false
}

// parseOverride recognizes routing override lines, most specific first: an
// explicit arrow path, then content medium+subheading prefixes, then the
// non-content section prefixes.
func parseOverride(line string) *override {
	if o := parseExplicitPath(line); o != nil {
		return o
	}
	if o := parseContentRouted(line); o != nil {
		return o
	}
	return parseNonContentRouted(line)
}

func parseExplicitPath(line string) *override {
	m := explicitPathRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	payload := strings.TrimSpace(m[2])
	if payload == "" {
		return nil
	}
	return &override{path: taxonomy.Normalize(m[1]), payload: payload}
}

func parseContentRouted(line string) *override {
	m := contentRoutedRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	payload := strings.TrimSpace(m[3])
	if payload == "" {
		return nil
	}
	medium := mediumLabels[strings.ToLower(strings.TrimSpace(m[1]))]
	kind := strings.ToLower(strings.TrimSpace(m[2]))
	kind = strings.Join(strings.Fields(kind), " ")

	subheading := taxonomy.GeneralSubheading
	gns := true
	if kind != "gns" && kind != "general news & strategy" {
		subheading = taxonomy.TitleCase(kind)
		gns = false
	}
	return &override{
		path:    fmt.Sprintf("Content, Deals & Distribution -> %s -> %s", medium, subheading),
		payload: payload,
		gns:     gns,
	}
}

func parseNonContentRouted(line string) *override {
	if m := maRoutedRe.FindStringSubmatch(line); m != nil {
		if payload := strings.TrimSpace(m[2]); payload != "" {
			return &override{path: "M&A -> General News & Strategy", payload: payload}
		}
	}

	if m := irRoutedRe.FindStringSubmatch(line); m != nil {
		payload := strings.TrimSpace(m[3])
		if payload == "" {
			return nil
		}
		kind := strings.Join(strings.Fields(strings.ToLower(m[2])), " ")
		var sub string
		switch kind {
		case "quarterly earnings", "earnings":
			sub = "Quarterly Earnings"
		case "company materials":
			sub = "Company Materials"
		case "news coverage":
			sub = "News Coverage"
		case "ir conferences":
			sub = "IR Conferences"
		case "analyst perspective":
			sub = "Analyst Perspective"
		default:
			sub = taxonomy.GeneralSubheading
		}
		return &override{
			path:    "Investor Relations -> General News & Strategy -> " + sub,
			payload: payload,
		}
	}

	if m := strategySubRoutedRe.FindStringSubmatch(line); m != nil {
		payload := strings.TrimSpace(m[3])
		if payload == "" {
			return nil
		}
		kind := strings.Join(strings.Fields(strings.ToLower(m[2])), " ")
		var sub string
		switch {
		case strings.HasPrefix(kind, "misc"):
			sub = "Misc. News"
		case kind == "strategy":
			sub = "Strategy"
		default:
			sub = taxonomy.GeneralSubheading
		}
		return &override{
			path:    "Strategy & Miscellaneous News -> General News & Strategy -> " + sub,
			payload: payload,
		}
	}

	if m := strategyBareRoutedRe.FindStringSubmatch(line); m != nil {
		if payload := strings.TrimSpace(m[2]); payload != "" {
			return &override{
				path:    "Strategy & Miscellaneous News -> General News & Strategy -> Strategy",
				payload: payload,
			}
		}
	}

	if m := highlightsRoutedRe.FindStringSubmatch(line); m != nil {
		if payload := strings.TrimSpace(m[1]); payload != "" {
			return &override{path: "Highlights -> General News & Strategy", payload: payload}
		}
	}

	return nil
}

// isExecChangeLine reports whether a line is an exec-change header.
func isExecChangeLine(text string) bool {
	lowered := strings.ToLower(text)
	for _, prefix := range []string{"exit:", "promotion:", "hiring:", "new role:"} {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// looksLikeTitleItem reports whether a content-list line opens a new title
// item. A line with a colon qualifies when both sides are non-empty and the
// prefix is not a known category label.
func looksLikeTitleItem(text string) bool {
	possible, rest, ok := strings.Cut(text, ":")
	if !ok {
		return false
	}
	possible = strings.TrimSpace(possible)
	if possible == "" || strings.TrimSpace(rest) == "" {
		return false
	}
	_, labeled := labelMap[strings.ToLower(possible)]
	return !labeled
}

// labelFromBullet splits a leading category label off a bullet, if present.
func labelFromBullet(text string) (label, content string) {
	if possible, rest, ok := strings.Cut(text, ":"); ok {
		if l, found := labelMap[strings.ToLower(strings.TrimSpace(possible))]; found {
			return l, strings.TrimSpace(rest)
		}
	}
	return "", strings.TrimSpace(text)
}

// buildFactCategory merges the classifier's base path with a label-derived
// subheading, keeping the classifier's section and medium segments.
func buildFactCategory(base, label string) (path, section, subheading string) {
	if base == "" {
		return taxonomy.GeneralSubheading, taxonomy.SectionStrategy, taxonomy.GeneralSubheading
	}
	parts := strings.Split(base, "->")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	keep := parts
	fallbackSub := ""
	if len(parts) > 1 {
		keep = parts[:len(parts)-1]
	}
	if len(parts) > 0 {
		fallbackSub = parts[len(parts)-1]
	}
	sub := label
	if sub == "" {
		sub = fallbackSub
	}
	segments := append([]string{}, keep...)
	if sub != "" {
		segments = append(segments, sub)
	}
	path = strings.Join(segments, " -> ")
	section, subheading = taxonomy.ParsePath(path)
	return path, section, subheading
}
