package diet

import (
	"regexp"
	"strings"
)

var (
	dietHintRe      = regexp.MustCompile(`(?i)\b(diet|eat|eating|avoid|food|foods|intake|meals?|sugar|salt|sodium|fib(?:er|re)|carbs?|carbohydrates?)\b`)
	lifestyleHintRe = regexp.MustCompile(`(?i)\b(exercise|walk|walking|sleep|stress|smoking|alcohol|active|activity|yoga|weight)\b`)
)

// adviceFromText picks sentences of the source text that carry diet or
// lifestyle hints. A sentence with both kinds of hint lands in both.
func adviceFromText(seg Segmenter, text string) (diet, lifestyle []string) {
	if seg == nil || strings.TrimSpace(text) == "" {
		return nil, nil
	}
	for _, s := range seg.Sentences(text) {
		if dietHintRe.MatchString(s) {
			diet = append(diet, s)
		}
		if lifestyleHintRe.MatchString(s) {
			lifestyle = append(lifestyle, s)
		}
	}
	return diet, lifestyle
}

// pickAdvice prefers sentences quoted from the document, then the fixed rule
// sentences, then the general fallback.
func pickAdvice(fromText, fixed []string, general string) string {
	if len(fromText) > 0 {
		return strings.Join(fromText, " ")
	}
	if len(fixed) > 0 {
		return strings.Join(fixed, " ")
	}
	return general
}
