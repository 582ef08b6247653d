package ambiguity

import "regexp"

// Detection signals are plain data: a pattern plus the reason tag it
// contributes. Adding or localizing a rule never touches control flow.
type rule struct {
	re  *regexp.Regexp
	tag string
}

func compileRules(tag string, patterns []string) []rule {
	rules := make([]rule, len(patterns))
	for i, p := range patterns {
		rules[i] = rule{re: regexp.MustCompile(p), tag: tag}
	}
	return rules
}

const (
	ReasonPronoun         = "pronoun_reference"
	ReasonMultipleObjects = "multiple_objects_same_type"
	ReasonReferentialHint = "referential_hint_present"
)

// Vague referents that need grounding before the question can be
// answered about a single object.
var pronounRules = compileRules(ReasonPronoun, []string{
	`\bit\b`,
	`\bthis\b`,
	`\bthat\b`,
	`\bthese\b`,
	`\bthose\b`,
	`\bthing\b`,
	`\bone\b`,
	`\bhere\b`,
	`\bthere\b`,
	`\bthe one\b`,
	`\bthat one\b`,
})

// Spatial or selective phrasing suggests the user is already pointing
// at a specific object. Recorded as a reason, never acted on in the
// first round.
var referentialHintRules = compileRules(ReasonReferentialHint, []string{
	`\bwhich\b`,
	`\bwhere\b`,
	`\bwhat\b`,
	`\bwhose\b`,
	`\bon the left\b`,
	`\bon the right\b`,
	`\bnext to\b`,
	`\bnear\b`,
	`\bclosest\b`,
	`\bfarthest\b`,
})

// Counting and enumeration questions are answered in aggregate, never
// about one instance, so they bypass clarification entirely.
var (
	countIntentRe = regexp.MustCompile(`\bhow many\b|\bnumber of\b|\bcount\b`)
	listIntentRe  = regexp.MustCompile(`\bwhat objects\b|\bwhat is in\b|\blist\b|\ball objects\b`)
)

func matchesAny(text string, rules []rule) bool {
	for _, r := range rules {
		if r.re.MatchString(text) {
			return true
		}
	}
	return false
}
