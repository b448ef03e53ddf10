// FILE: pkg/rag/intent/normalize.go
// PURPOSE: Lightweight query cleanup and keyword extraction before retrieval

package intent

import "strings"

// Common misspellings seen in real queries against the document corpus
var typoFixes = map[string]string{
	"seperate":   "separate",
	"definately": "definitely",
	"recieve":    "receive",
	"occured":    "occurred",
	"proceedure": "procedure",
	"standrad":   "standard",
	"standrads":  "standards",
	"polciy":     "policy",
	"wellnes":    "wellness",
	"projcet":    "project",
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"what": true, "whats": true, "which": true, "who": true, "how": true,
	"my": true, "our": true, "your": true, "i": true, "me": true, "we": true,
	"do": true, "does": true, "did": true, "can": true, "could": true,
	"please": true, "tell": true, "show": true, "give": true, "find": true,
	"about": true, "for": true, "of": true, "to": true, "on": true, "in": true,
	"and": true, "or": true, "with": true, "at": true, "by": true, "from": true,
	"there": true, "this": true, "that": true, "it": true, "its": true,
	"have": true, "has": true, "any": true, "all": true, "some": true,
	"need": true, "want": true, "know": true, "get": true, "us": true,
}

// Normalize lowercases the query, fixes common typos, and collapses whitespace.
// It never removes words; retrieval keeps the full user phrasing.
func Normalize(query string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	for i, word := range words {
		stripped := strings.Trim(word, ".,?!;:")
		if fixed, ok := typoFixes[stripped]; ok {
			words[i] = strings.Replace(word, stripped, fixed, 1)
		}
	}
	return strings.Join(words, " ")
}

// Abbreviations the corpus spells out in full; the index matches the
// expanded form, not the shorthand
var synonymExpansions = map[string]string{
	"wfh":   "work from home",
	"h&s":   "health and safety",
	"sop":   "standard operating procedure",
	"h2h":   "how to handbook",
	"nzs":   "nz standard",
	"specs": "specifications",
}

var categoryBoostTerms = map[Intent]string{
	IntentPolicy:    "policy",
	IntentProcedure: "procedure",
	IntentStandards: "standard",
}

// ExpandForSearch widens a normalized query with spelled-out synonym
// variants and the detected category's boost term. Existing words are
// never removed or reordered.
func ExpandForSearch(query string, in Intent) string {
	expanded := query

	for _, word := range strings.Fields(query) {
		stripped := strings.Trim(word, ".,?!;:()\"'")
		if full, ok := synonymExpansions[stripped]; ok && !strings.Contains(expanded, full) {
			expanded += " " + full
		}
	}

	if boost, ok := categoryBoostTerms[in]; ok && !strings.Contains(expanded, boost) {
		expanded += " " + boost
	}

	return expanded
}

// Keywords extracts up to maxKeywords content words from a query,
// dropping stop words and short tokens
func Keywords(query string, maxKeywords int) []string {
	if maxKeywords <= 0 {
		maxKeywords = 10
	}

	words := strings.Fields(strings.ToLower(query))
	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]bool)

	for _, word := range words {
		word = strings.Trim(word, ".,?!;:()\"'")
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return keywords
}
