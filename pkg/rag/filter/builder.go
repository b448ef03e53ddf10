// FILE: pkg/rag/filter/builder.go
// PURPOSE: Build OData range filters over the folder-path field from intent + metadata

package filter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ai-docassist-be/pkg/rag/intent"
	"ai-docassist-be/pkg/rag/metadata"
)

// Folder namespaces per category. Each value becomes one half-open range
// clause; a category with several known folder spellings gets an OR union.
var categoryFolders = map[intent.Intent][]string{
	intent.IntentPolicy:    {"Policies", "Health and Safety", "Wellbeing"},
	intent.IntentProcedure: {"Procedures", "How to Handbooks", "H2H"},
	intent.IntentStandards: {"Standards", "NZ Standards", "NZS"},
	intent.IntentClient:    {"Clients"},
}

// UpperBound returns the smallest string lexicographically greater than every
// string prefixed by path. A purely numeric final segment is incremented as an
// integer (Projects/225 -> Projects/226, including rollover 229 -> 230);
// otherwise the final character's code point is incremented.
func UpperBound(path string) string {
	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	if n, err := strconv.Atoi(last); err == nil && last != "" {
		segments[len(segments)-1] = strconv.Itoa(n + 1)
		return strings.Join(segments, "/")
	}

	runes := []rune(last)
	if len(runes) == 0 {
		return path
	}
	runes[len(runes)-1]++
	segments[len(segments)-1] = string(runes)
	return strings.Join(segments, "/")
}

// rangeClause scopes the folder field to everything under prefix/
func rangeClause(prefix string) string {
	return fmt.Sprintf("folder ge '%s/' and folder lt '%s'", prefix, UpperBound(prefix))
}

// joinClauses ORs clauses together, parenthesizing only when there is a union
func joinClauses(clauses []string) string {
	if len(clauses) == 0 {
		return ""
	}
	if len(clauses) == 1 {
		return clauses[0]
	}
	wrapped := make([]string, len(clauses))
	for i, c := range clauses {
		wrapped[i] = "(" + c + ")"
	}
	return strings.Join(wrapped, " or ")
}

// Build converts an intent and optional metadata into an OData filter over the
// folder field. Returns "" when the query should run unscoped.
func Build(in intent.Intent, meta *metadata.ProjectMetadata, query string) string {
	switch in {
	case intent.IntentSimpleTest, intent.IntentGeneralKnowledge:
		return ""
	case intent.IntentProject:
		return buildProjectFilter(meta)
	case intent.IntentClient:
		return buildClientFilter(query)
	case intent.IntentPolicy, intent.IntentProcedure, intent.IntentStandards:
		return buildCategoryFilter(in)
	default:
		return ""
	}
}

func buildCategoryFilter(in intent.Intent) string {
	folders := categoryFolders[in]
	clauses := make([]string, 0, len(folders))
	for _, folder := range folders {
		clauses = append(clauses, rangeClause(folder))
	}
	return joinClauses(clauses)
}

func buildProjectFilter(meta *metadata.ProjectMetadata) string {
	switch {
	case meta.HasYearRange():
		// One clause per year: year folders are not contiguous strings,
		// so a single collapsed range would match unrelated paths
		clauses := make([]string, 0, meta.YearRangeEnd-meta.YearRangeStart+1)
		for year := meta.YearRangeStart; year <= meta.YearRangeEnd; year++ {
			clauses = append(clauses, rangeClause(fmt.Sprintf("Projects/%d", year)))
		}
		return joinClauses(clauses)

	case meta != nil && meta.JobNumber != "" && meta.YearCode != "":
		return rangeClause(fmt.Sprintf("Projects/%s/%s", meta.YearCode, meta.JobNumber))

	case meta != nil && meta.YearCode != "":
		return rangeClause(fmt.Sprintf("Projects/%s", meta.YearCode))

	default:
		// Degraded behavior when nothing was extracted: scope to the whole
		// Projects namespace rather than failing
		return rangeClause("Projects")
	}
}

func buildClientFilter(query string) string {
	clause := rangeClause("Clients")

	if name := extractClientName(query); name != "" {
		clause = fmt.Sprintf("(%s) and search.ismatch('%s', 'content,project_name')", clause, escapeSearchText(name))
	}
	return clause
}

// extractClientName finds a capitalized token following the word "client"
func extractClientName(query string) string {
	words := strings.Fields(query)
	for i, word := range words {
		if strings.ToLower(strings.Trim(word, ".,?!;:")) != "client" {
			continue
		}
		for j := i + 1; j < len(words); j++ {
			candidate := strings.Trim(words[j], ".,?!;:")
			if candidate == "" {
				continue
			}
			runes := []rune(candidate)
			if unicode.IsUpper(runes[0]) {
				return candidate
			}
			break
		}
	}
	return ""
}

// escapeSearchText doubles single quotes so a name cannot break the filter string
func escapeSearchText(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
