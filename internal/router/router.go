// Package router maps classifier category labels to the parsing style,
// grouping style, and generator prompt used downstream. The routing table is
// explicit constructor configuration, scanned in order with first match wins.
package router

import (
	"strings"

	"github.com/sells-group/coverage-cli/internal/model"
)

// ParseStyle selects how the assembler interprets generated lines.
type ParseStyle string

const (
	StyleContentList ParseStyle = "content_list" // greenlights, pickups, renewals, ...
	StyleExecChange  ParseStyle = "exec_change"  // Exit:/Promotion:/Hiring:/New Role: headers
	StyleInterview   ParseStyle = "interview"    // single fact, header + paragraphs
	StyleGeneral     ParseStyle = "general"      // one fact per line
)

// GroupStyle selects how consecutive lines fold into facts.
type GroupStyle string

const (
	GroupTitleNote   GroupStyle = "title_note"   // title item + at most one note line
	GroupHeaderNotes GroupStyle = "header_notes" // header starts fact, follow-ons attach
	GroupSingle      GroupStyle = "single"       // whole output is one fact
	GroupPerLine     GroupStyle = "per_line"     // every non-empty line is a fact
)

// Rule is one routing table entry. The first rule with any substring hit on
// the lowercased category path wins.
type Rule struct {
	Name     string
	MatchAny []string
	Style    ParseStyle
	Grouping GroupStyle
	Prompt   string
}

// Route is the resolved (parsing-style, grouping-style, prompt) triple.
type Route struct {
	Rule     string
	Style    ParseStyle
	Grouping GroupStyle
	Prompt   string
}

// Options tune routing behavior.
type Options struct {
	// ConfidenceFloor forces the general fallback when the classifier reports
	// confidence below it. Zero means DefaultConfidenceFloor. A classification
	// without a confidence value is treated as usable, not low-confidence.
	ConfidenceFloor float64
	// UnprefixedExecNotes selects the exec-changes prompt variant whose
	// follow-on note lines carry no "Note:" prefix.
	UnprefixedExecNotes bool
}

// DefaultConfidenceFloor is the minimum classifier confidence that may drive
// a specialized, assumption-heavy parse.
const DefaultConfidenceFloor = 0.5

// Prompt names understood by the generator collaborator.
const (
	PromptGeneralNews        = "general_news"
	PromptExecChanges        = "exec_changes"
	PromptExecChangesNoNote  = "exec_changes_unprefixed_note"
	PromptInterview          = "interview"
	PromptCommentary         = "commentary"
	PromptContentFormatter   = "content_formatter"
	PromptContentDeals       = "content_deals"
)

// Fallback is the safe general route used for low-confidence or unmatched
// classifications.
var Fallback = Route{
	Rule:     "general",
	Style:    StyleGeneral,
	Grouping: GroupPerLine,
	Prompt:   PromptGeneralNews,
}

// DefaultRules returns the built-in routing table. International content
// slates route ahead of the generic content-list rule because their output
// preserves multiple titles per announcement.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "exec_changes",
			MatchAny: []string{"exec changes"},
			Style:    StyleExecChange,
			Grouping: GroupHeaderNotes,
			Prompt:   PromptExecChanges,
		},
		{
			Name:     "interview",
			MatchAny: []string{"interview"},
			Style:    StyleInterview,
			Grouping: GroupSingle,
			Prompt:   PromptInterview,
		},
		{
			Name:     "commentary",
			MatchAny: []string{"strategy", "commentary"},
			Style:    StyleInterview,
			Grouping: GroupSingle,
			Prompt:   PromptCommentary,
		},
		{
			Name:     "international_deals",
			MatchAny: []string{"international"},
			Style:    StyleContentList,
			Grouping: GroupTitleNote,
			Prompt:   PromptContentDeals,
		},
		{
			Name:     "content_list",
			MatchAny: []string{"greenlights", "development", "renewals", "cancellations", "pickups", "dating"},
			Style:    StyleContentList,
			Grouping: GroupTitleNote,
			Prompt:   PromptContentFormatter,
		},
	}
}

// Router resolves classifications to routes. It is pure and safe for
// concurrent use.
type Router struct {
	rules []Rule
	opts  Options
}

// New builds a Router over an ordered rule table.
func New(rules []Rule, opts Options) *Router {
	if opts.ConfidenceFloor <= 0 {
		opts.ConfidenceFloor = DefaultConfidenceFloor
	}
	return &Router{rules: rules, opts: opts}
}

// Route resolves a classification. It always returns a usable route and
// never fails; no match simply selects the general fallback.
func (r *Router) Route(cls model.Classification) Route {
	// Low confidence must never drive specialized parsing.
	if cls.Confidence != nil && *cls.Confidence < r.opts.ConfidenceFloor {
		return Fallback
	}

	lower := strings.ToLower(cls.CategoryPath)
	for _, rule := range r.rules {
		for _, token := range rule.MatchAny {
			if strings.Contains(lower, token) {
				return r.resolve(rule)
			}
		}
	}
	return Fallback
}

func (r *Router) resolve(rule Rule) Route {
	prompt := rule.Prompt
	if prompt == PromptExecChanges && r.opts.UnprefixedExecNotes {
		prompt = PromptExecChangesNoNote
	}
	return Route{
		Rule:     rule.Name,
		Style:    rule.Style,
		Grouping: rule.Grouping,
		Prompt:   prompt,
	}
}
