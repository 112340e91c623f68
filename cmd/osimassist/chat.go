package main

import (
	"bufio"
	"fmt"
	"strings"

	assistant "github.com/chaurasiavikash/openSimAssistant"
)

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "OpenSim assistant is ready for queries!")
	fmt.Fprintln(deps.Stdout, "Type 'exit' to quit, 'clear' to clear chat history")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "\nEnter your query: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "exit":
			fmt.Fprintln(deps.Stdout, "\nThanks for using the OpenSim assistant!")
			return scanner.Err()
		case "clear":
			deps.Queries.ClearHistory()
			fmt.Fprintln(deps.Stdout, "Chat history cleared")
			continue
		case "":
			continue
		}

		result, err := deps.Queries.ProcessQuery(deps.Ctx, input, c.TopK)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", assistant.ErrorMessage(err))
			continue
		}

		printResult(deps.Stdout, result)
	}

	fmt.Fprintln(deps.Stdout, "\nThanks for using the OpenSim assistant!")
	return scanner.Err()
}
