package agent

import (
	"strings"
	"unicode"
)

// Menu vocabulary. Multi-word phrases are matched before single words so
// "hot chocolate" never leaks a "chocolate" extra.
var (
	drinkPhrases = []string{
		"hot chocolate", "flat white", "cold brew",
		"frappuccino", "cappuccino", "macchiato", "americano",
		"espresso", "mocha", "latte",
	}

	sizeWords = []string{"small", "medium", "large", "tall", "grande", "venti"}

	// Distinctive milk words match anywhere; "whole" is too common and
	// only counts next to "milk" or as a direct answer to the milk
	// question.
	milkWords = []string{"almond", "oat", "soy", "coconut", "skim"}

	extraPhrases = []string{
		"whipped cream", "extra shot",
		"caramel", "vanilla", "chocolate", "cinnamon",
	}

	namePrefixes = []string{
		"my name is ", "the name is ", "name is ", "call me ",
		"it's for ", "its for ", "this is ", "i'm ", "i am ",
		"it's ", "its ", "under ", "for ",
	}

	// Words that end a captured name ("Sam please" -> "Sam").
	politeSuffixes = []string{"please", "thanks", "thank you"}

	// Short replies that are answers, not names.
	replyWords = map[string]bool{
		"yes": true, "yeah": true, "yep": true, "sure": true,
		"ok": true, "okay": true, "no": true, "nope": true,
		"nah": true, "none": true, "nothing": true, "please": true,
		"thanks": true, "hi": true, "hello": true, "hey": true,
		"here": true, "there": true, "me": true, "now": true,
		"good": true, "fine": true, "all": true,
	}
)

// parsed holds everything one utterance yielded.
type parsed struct {
	drink          string
	size           string
	milk           string
	extras         []string
	declinedExtras bool
	affirmed       bool
	name           string
}

func (p parsed) empty() bool {
	return p.drink == "" && p.size == "" && p.milk == "" &&
		len(p.extras) == 0 && !p.declinedExtras && !p.affirmed && p.name == ""
}

// parseUtterance extracts order slots from free text. The awaiting slot
// disambiguates bare answers: "whole" is milk only when milk was asked,
// a lone unknown word is a name only when the name (or extras-or-name)
// question is pending.
func parseUtterance(text string, awaiting slot) parsed {
	var p parsed

	norm := normalize(text)
	if norm == "" {
		return p
	}
	// Padded working copy; matched spans are blanked out so the same
	// words are not claimed twice.
	work := " " + norm + " "

	if d, rest := takePhrase(work, drinkPhrases); d != "" {
		p.drink = d
		work = rest
	}
	for _, w := range sizeWords {
		if hit, rest := takeWord(work, w); hit {
			p.size = w
			work = rest
			break
		}
	}

	work = parseMilk(work, awaiting, &p)

	for _, e := range extraPhrases {
		if hit, rest := takeWord(work, e); hit {
			p.extras = append(p.extras, e)
			work = rest
		}
	}

	if awaiting == awaitExtras && p.empty() {
		switch {
		case isDecline(norm):
			p.declinedExtras = true
			return p
		case isAffirmation(norm):
			p.affirmed = true
			return p
		}
	}

	parseName(norm, awaiting, &p)
	return p
}

func parseMilk(work string, awaiting slot, p *parsed) string {
	for _, w := range milkWords {
		if hit, rest := takeWord(work, w); hit {
			p.milk = w
			return rest
		}
	}
	for _, phrase := range []string{"no milk", "without milk", "black"} {
		if hit, rest := takeWord(work, phrase); hit {
			p.milk = "none"
			return rest
		}
	}
	if hit, rest := takeWord(work, "whole"); hit {
		if strings.Contains(work, " milk ") || awaiting == awaitMilk {
			p.milk = "whole"
			return rest
		}
	}
	if awaiting == awaitMilk {
		if hit, rest := takeWord(work, "none"); hit {
			p.milk = "none"
			return rest
		}
	}
	return work
}

func parseName(norm string, awaiting slot, p *parsed) {
	for _, prefix := range namePrefixes {
		idx := strings.Index(norm, prefix)
		if idx < 0 {
			continue
		}
		candidate := nameWords(norm[idx+len(prefix):])
		if candidate == "" || isVocab(candidate) || replyWords[candidate] {
			continue
		}
		p.name = capitalize(candidate)
		return
	}

	// Bare reply to the name question: take the whole utterance when it
	// is short, unknown, and not menu vocabulary.
	if p.name == "" && p.empty() && (awaiting == awaitName || awaiting == awaitExtras) {
		candidate := trimName(norm)
		if candidate == "" || isVocab(candidate) || replyWords[candidate] {
			return
		}
		if len(strings.Fields(candidate)) <= 3 {
			p.name = capitalize(candidate)
		}
	}
}

// normalize lowercases, strips punctuation, and collapses whitespace.
func normalize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// takePhrase finds the first phrase present in work and blanks it out.
func takePhrase(work string, phrases []string) (string, string) {
	for _, phrase := range phrases {
		if hit, rest := takeWord(work, phrase); hit {
			return phrase, rest
		}
	}
	return "", work
}

// takeWord matches needle on word boundaries inside the padded working
// copy and blanks the matched span.
func takeWord(work, needle string) (bool, string) {
	padded := " " + needle + " "
	idx := strings.Index(work, padded)
	if idx < 0 {
		return false, work
	}
	blank := strings.Repeat(" ", len(needle))
	return true, work[:idx+1] + blank + work[idx+1+len(needle):]
}

func trimName(s string) string {
	s = strings.TrimSpace(s)
	for _, suffix := range politeSuffixes {
		s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
	}
	return s
}

// nameWords keeps the leading run of words that could be a name,
// stopping at conjunctions and menu vocabulary, capped at three words.
func nameWords(s string) string {
	var kept []string
	for _, w := range strings.Fields(trimName(s)) {
		switch w {
		case "and", "i", "i'll", "ill", "with", "please", "thanks":
			return strings.Join(kept, " ")
		}
		if isVocab(w) {
			return strings.Join(kept, " ")
		}
		kept = append(kept, w)
		if len(kept) == 3 {
			break
		}
	}
	return strings.Join(kept, " ")
}

func isVocab(s string) bool {
	probe := " " + s + " "
	for _, w := range drinkPhrases {
		if strings.Contains(probe, " "+w+" ") {
			return true
		}
	}
	for _, w := range sizeWords {
		if strings.Contains(probe, " "+w+" ") {
			return true
		}
	}
	for _, w := range milkWords {
		if strings.Contains(probe, " "+w+" ") {
			return true
		}
	}
	for _, w := range extraPhrases {
		if strings.Contains(probe, " "+w+" ") {
			return true
		}
	}
	return strings.Contains(probe, " milk ") || strings.Contains(probe, " whole ")
}

func isDecline(norm string) bool {
	switch norm {
	case "no", "nope", "nah", "none", "nothing", "no thanks", "no thank you",
		"that's all", "thats all", "that is all", "im good", "i'm good":
		return true
	}
	return false
}

func isAffirmation(norm string) bool {
	switch norm {
	case "yes", "yeah", "yep", "sure", "ok", "okay", "yes please", "sure thing":
		return true
	}
	return false
}

func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
