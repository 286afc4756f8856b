// Package category turns raw free-text section labels from source registries
// into canonical category names and slugs. Normalize is a pure function; the
// caller persists the resulting (name, slug) pair.
package category

import (
	"regexp"
	"strings"
	"unicode"
)

// Result is a canonical category produced by normalization.
type Result struct {
	Name string
	Slug string
}

var (
	whatIsRe      = regexp.MustCompile(`^what\s+is\s+.+\??$`)
	leadParenRe   = regexp.MustCompile(`^\s*[(\[][^)\]]*[)\]]\s*`)
	trailParenRe  = regexp.MustCompile(`\s*[(\[][^)\]]*[)\]]\s*$`)
	noiseRe       = regexp.MustCompile(`[^a-zA-Z0-9&/+#\- ]+`)
	slugDropRe    = regexp.MustCompile(`[^a-z0-9 \-]+`)
	spaceRe       = regexp.MustCompile(`\s+`)
	dashRe        = regexp.MustCompile(`-+`)
	fillerWords   = map[string]bool{"for": true, "with": true, "using": true, "based": true}
	fullWidthPunt = strings.NewReplacer(
		"：", ":", "，", ",", "。", ".", "！", "!", "？", "?",
		"（", "(", "）", ")", "［", "[", "］", "]", "＆", "&",
		"／", "/", "－", "-", "　", " ",
	)
)

// Normalize cleans a raw label and resolves it to a canonical category.
// The second return value is false when the label is a meta header or too
// short to be a category ("skip"). Normalize never fails on any input.
func Normalize(raw string) (Result, bool) {
	label := clean(raw)

	if shouldSkip(label) {
		return Result{}, false
	}

	if name, ok := resolve(strings.ToLower(label)); ok {
		// Mapped entries are trusted verbatim, no further casing or
		// pluralization.
		return Result{Name: name, Slug: Slugify(name)}, true
	}

	// The length cut comes after the lookup so short mapped labels
	// ("ai", "ml", "db", "go") survive; unmapped scraps like "CS" do not.
	if len([]rune(label)) <= 2 {
		return Result{}, false
	}

	name := titleize(label)
	if name == "" {
		return Result{}, false
	}
	return Result{Name: name, Slug: Slugify(name)}, true
}

// clean applies the text-cleanup stages that precede the skip test: trim,
// emoji removal, full-width punctuation, filler words and parentheticals.
func clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripEmoji(s)
	s = fullWidthPunt.Replace(s)
	s = leadParenRe.ReplaceAllString(s, "")
	s = trailParenRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// Drop leading filler words ("for Android" -> "Android").
	for {
		fields := strings.SplitN(s, " ", 2)
		if len(fields) != 2 || !fillerWords[strings.ToLower(fields[0])] {
			break
		}
		s = strings.TrimSpace(fields[1])
	}

	s = spaceRe.ReplaceAllString(s, " ")
	return strings.Trim(s, " -:")
}

// shouldSkip rejects known meta headers and "what is ...?" sections
// unconditionally. Short labels are rejected separately, after the mapping
// lookup has had its chance.
func shouldSkip(label string) bool {
	lower := strings.ToLower(label)
	if skipHeaders[lower] {
		return true
	}
	return whatIsRe.MatchString(lower)
}

// resolve looks the lowercased label up in the literal table, then walks the
// ordered structural fallback rules.
func resolve(lower string) (string, bool) {
	if name, ok := categoryMappings[lower]; ok {
		return name, true
	}
	for _, rule := range fallbackRules {
		if name, ok := rule(lower); ok {
			return name, true
		}
	}
	return "", false
}

// fallbackRules are evaluated in fixed order after the literal table misses.
// Populated in init: the rules recurse through resolve, which walks this
// slice, so a composite literal would form an initialization cycle.
var fallbackRules []func(lower string) (string, bool)

func init() {
	fallbackRules = []func(lower string) (string, bool){
		// "deployment tools for X" -> Deployment
		func(lower string) (string, bool) {
			if strings.HasPrefix(lower, "deployment tools for ") || strings.HasPrefix(lower, "deployment tools ") {
				return "Deployment", true
			}
			return "", false
		},
		// fixed canonical buckets by prefix
		func(lower string) (string, bool) {
			for prefix, name := range bucketPrefixes {
				if strings.HasPrefix(lower, prefix) {
					return name, true
				}
			}
			return "", false
		},
		// "software development - X" -> resolve X, default Developer Tools
		func(lower string) (string, bool) {
			const prefix = "software development - "
			if !strings.HasPrefix(lower, prefix) {
				return "", false
			}
			rest := strings.TrimSpace(strings.TrimPrefix(lower, prefix))
			if name, ok := resolve(rest); ok {
				return name, true
			}
			return "Developer Tools", true
		},
		// "X tools" / "X library" / "X utilities" -> resolve X
		func(lower string) (string, bool) {
			for _, suffix := range toolSuffixes {
				if rest, found := strings.CutSuffix(lower, suffix); found {
					rest = strings.TrimSpace(rest)
					if rest == "" {
						continue
					}
					if name, ok := resolve(rest); ok {
						return name, true
					}
				}
			}
			return "", false
		},
		// "X and Y" / "X & Y" -> try X, then Y
		func(lower string) (string, bool) {
			for _, sep := range []string{" and ", " & "} {
				left, right, found := strings.Cut(lower, sep)
				if !found {
					continue
				}
				if name, ok := resolve(strings.TrimSpace(left)); ok {
					return name, true
				}
				if name, ok := resolve(strings.TrimSpace(right)); ok {
					return name, true
				}
			}
			return "", false
		},
	}
}

var bucketPrefixes = map[string]string{
	"document management -": "Document Management",
	"file transfer -":       "File Transfer",
	"communication -":       "Communication",
	"media streaming -":     "Media Streaming",
}

var toolSuffixes = []string{
	" tools", " tool",
	" libraries", " library",
	" utilities", " utils",
}

// titleize is the generic path for unmapped labels: strip noise, title-case
// with acronym awareness, pluralize the final word.
func titleize(label string) string {
	s := noiseRe.ReplaceAllString(label, " ")
	s = spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	if s == "" {
		return ""
	}

	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = titleWord(w)
	}
	last := len(words) - 1
	words[last] = pluralize(words[last])
	return strings.Join(words, " ")
}

func titleWord(w string) string {
	if fixed, ok := acronyms[strings.ToLower(w)]; ok {
		return fixed
	}
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return w
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// pluralize appends a plural suffix unless the word is a mass noun, already
// plural, or ends in -ing/-ment.
func pluralize(w string) string {
	lower := strings.ToLower(w)
	if massNouns[lower] {
		return w
	}
	if strings.HasSuffix(lower, "ing") || strings.HasSuffix(lower, "ment") {
		return w
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") {
		return w
	}
	if len(lower) >= 2 && strings.HasSuffix(lower, "y") && !isVowel(rune(lower[len(lower)-2])) {
		return w[:len(w)-1] + "ies"
	}
	switch {
	case strings.HasSuffix(lower, "ss"),
		strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"),
		strings.HasSuffix(lower, "sh"):
		return w + "es"
	}
	return w + "s"
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Slugify builds the canonical slug: lowercase, "&" -> "and", "/" -> "-",
// punctuation stripped, whitespace and dash runs collapsed.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "/", "-")
	s = slugDropRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	s = dashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripEmoji removes pictographic code points, variation selectors and
// joiners commonly used as section decorations.
func stripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, symbols
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // stars, arrows
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r == 0x200D: // zero-width joiner
		return true
	}
	return false
}
