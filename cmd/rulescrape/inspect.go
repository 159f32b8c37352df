package main

import (
	"fmt"

	"github.com/fwojciec/rulescrape"
	"github.com/fwojciec/rulescrape/fs"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	rules, err := fs.ReadRules(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rulescrape.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%d rules, %d with full text\n", len(rules), rulescrape.CountWithFullText(rules))
	for _, r := range rules {
		fmt.Fprintf(deps.Stdout, "%s  %s  (%d chapters, %d chars)\n", r.Identifier, r.Title, len(r.Chapters), len(r.FullText))
		if c.Full && r.HasFullText() {
			fmt.Fprintf(deps.Stdout, "\n%s\n\n", r.FullText)
		}
	}

	return nil
}
