// Offline pipeline inspector: shows what the query understanding stages
// produce for a given query without calling any external service.
//
// Usage: go run ./cmd/diag "give me project numbers from the past 4 years"
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"ai-docassist-be/pkg/rag/filter"
	"ai-docassist-be/pkg/rag/intent"
	"ai-docassist-be/pkg/rag/metadata"
)

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func main() {
	if len(os.Args) < 2 {
		color.Red("Usage: diag \"<query>\"")
		os.Exit(1)
	}
	query := strings.Join(os.Args[1:], " ")

	color.Cyan("🔍 Query Understanding Diagnostics\n")
	color.Yellow("\n[1] Input")
	fmt.Printf("query: %q\n", query)
	fmt.Printf("normalized: %q\n", intent.Normalize(query))
	fmt.Printf("keywords: %v\n", intent.Keywords(query, 10))

	color.Yellow("\n[2] Metadata Extraction")
	meta := metadata.Extract(query, time.Now().Year())
	if meta == nil {
		fmt.Println("no project metadata extracted")
	} else {
		prettyPrint(meta)
	}

	color.Yellow("\n[3] Candidate Filters")
	for _, in := range []intent.Intent{
		intent.IntentProject,
		intent.IntentPolicy,
		intent.IntentProcedure,
		intent.IntentStandards,
		intent.IntentClient,
	} {
		expr := filter.Build(in, meta, query)
		color.Green("%s:", in)
		fmt.Printf("  %s\n", expr)
	}

	color.Yellow("\n[4] Upper Bound Samples")
	for _, path := range []string{"Projects/225", "Projects/229", "Policies", "Projects/225/225221"} {
		fmt.Printf("  upperBound(%-22q) = %q\n", path, filter.UpperBound(path))
	}
}
