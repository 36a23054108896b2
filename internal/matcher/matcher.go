// Package matcher infers which tracked buyer (media company) an article is
// about from keyword evidence. Keyword tables are explicit configuration
// passed to the constructor; there is no package-level state.
package matcher

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/coverage-cli/internal/model"
)

// Unknown is the terminal result when no buyer keyword matches.
const Unknown = "Unknown"

// leadLength is how many characters of body count as the article lead.
const leadLength = 400

// Match tiers, strongest first. Title and URL-host hits outrank lead hits,
// which outrank body-only hits regardless of how often a body keyword repeats.
const (
	tierNone = iota
	tierBody
	tierLead
	tierTitle
)

// Keywords is one buyer's keyword list. Order within Terms is irrelevant;
// order of buyers in Config breaks ties between equally strong matches.
type Keywords struct {
	Buyer string   `yaml:"buyer"`
	Terms []string `yaml:"terms"`
}

// Config is the immutable, ordered buyer keyword table.
type Config struct {
	Buyers []Keywords `yaml:"buyers"`
}

// Result is the multi-buyer view of an article's keyword evidence: buyers
// with a strong (title/lead/host) hit, and buyers seen only deep in the body,
// which are surfaced for human review rather than silently included.
type Result struct {
	Strong []string
	Weak   []string
}

// Matcher scores articles against a buyer keyword table.
type Matcher struct {
	buyers []compiledBuyer
}

type compiledBuyer struct {
	name  string
	terms []string
}

// New builds a Matcher from a keyword config. Terms are matched
// case-insensitively as whole words.
func New(cfg Config) (*Matcher, error) {
	if len(cfg.Buyers) == 0 {
		return nil, eris.New("matcher: empty buyer table")
	}
	m := &Matcher{}
	for _, b := range cfg.Buyers {
		if strings.TrimSpace(b.Buyer) == "" {
			return nil, eris.New("matcher: buyer with empty name")
		}
		cb := compiledBuyer{name: b.Buyer}
		for _, t := range b.Terms {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				cb.terms = append(cb.terms, t)
			}
		}
		if len(cb.terms) == 0 {
			return nil, eris.Wrapf(eris.New("no terms"), "matcher: buyer %s", b.Buyer)
		}
		m.buyers = append(m.buyers, cb)
	}
	return m, nil
}

type score struct {
	buyer  string
	tier   int
	offset int
	order  int
}

// Infer returns the single best buyer for the article and the strength of
// that match. It never fails: no evidence yields (Unknown, MatchNone).
func (m *Matcher) Infer(article model.Article) (string, model.MatchStrength) {
	best := score{tier: tierNone}
	for i, b := range m.buyers {
		s := m.scoreBuyer(b, article)
		if s.tier == tierNone {
			continue
		}
		s.order = i
		if better(s, best) {
			best = s
		}
	}
	switch {
	case best.tier >= tierLead:
		return best.buyer, model.MatchStrong
	case best.tier == tierBody:
		return best.buyer, model.MatchWeak
	default:
		return Unknown, model.MatchNone
	}
}

// Match returns every buyer reaching the strong tier plus the weak-only
// buyers, each list in config order.
func (m *Matcher) Match(article model.Article) Result {
	var res Result
	for _, b := range m.buyers {
		s := m.scoreBuyer(b, article)
		switch {
		case s.tier >= tierLead:
			res.Strong = append(res.Strong, b.name)
		case s.tier == tierBody:
			res.Weak = append(res.Weak, b.name)
		}
	}
	return res
}

// MatchText reports which buyers are mentioned anywhere in free text.
func (m *Matcher) MatchText(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, b := range m.buyers {
		for _, term := range b.terms {
			if findWord(lower, term) >= 0 {
				out = append(out, b.name)
				break
			}
		}
	}
	return out
}

func (m *Matcher) scoreBuyer(b compiledBuyer, article model.Article) score {
	title := strings.ToLower(article.Title)
	host := article.Host()
	body := strings.ToLower(article.Content)
	lead := body
	if len(lead) > leadLength {
		lead = lead[:leadLength]
	}

	best := score{buyer: b.name, tier: tierNone}
	for _, term := range b.terms {
		if off := findWord(title, term); off >= 0 {
			best = bestOf(best, score{buyer: b.name, tier: tierTitle, offset: off})
			continue
		}
		if off := findWord(host, term); off >= 0 {
			best = bestOf(best, score{buyer: b.name, tier: tierTitle, offset: off})
			continue
		}
		if off := findWord(lead, term); off >= 0 {
			best = bestOf(best, score{buyer: b.name, tier: tierLead, offset: off})
			continue
		}
		if off := findWord(body, term); off >= 0 {
			best = bestOf(best, score{buyer: b.name, tier: tierBody, offset: off})
		}
	}
	return best
}

func bestOf(a, b score) score {
	if better(b, a) {
		return b
	}
	return a
}

// better reports whether a outranks b: higher tier first, then earlier
// offset, then earlier config order.
func better(a, b score) bool {
	if a.tier != b.tier {
		return a.tier > b.tier
	}
	if a.offset != b.offset {
		return a.offset < b.offset
	}
	return a.order < b.order
}

// findWord returns the earliest offset of needle in haystack where the match
// is not embedded in a longer word ("max" must not hit inside "maxwell").
// Both arguments must already be lowercased. Returns -1 when absent.
func findWord(haystack, needle string) int {
	if needle == "" || haystack == "" {
		return -1
	}
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		start := from + idx
		end := start + len(needle)
		if !wordChar(byteBefore(haystack, start)) && !wordChar(byteAt(haystack, end)) {
			return start
		}
		from = start + 1
	}
}

func byteBefore(s string, i int) byte {
	if i == 0 {
		return 0
	}
	return s[i-1]
}

func byteAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

func wordChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
