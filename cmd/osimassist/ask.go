package main

import (
	"fmt"
	"io"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// answerLimit caps how much of an answer is printed; retrieved chunks
// can be long.
const answerLimit = 500

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	result, err := deps.Queries.ProcessQuery(deps.Ctx, c.Question, c.TopK)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
		return err
	}

	printResult(deps.Stdout, result)
	return nil
}

// printResult writes the answer and its numbered sources.
func printResult(w io.Writer, result *assistant.QueryResult) {
	fmt.Fprintln(w, "\nAnswer:")
	fmt.Fprintln(w, truncate(result.Answer, answerLimit))

	fmt.Fprintln(w, "\nSources:")
	for i, source := range result.Sources {
		fmt.Fprintf(w, "%d. %s (%s)\n", i+1, source.Title, source.Type)
		fmt.Fprintf(w, "   Source: %s\n", source.Source)
	}
}

// truncate shortens s to at most limit runes, marking the cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
