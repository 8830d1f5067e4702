package main

import (
	"fmt"

	"github.com/fwojciec/clanko"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Articles.FindArticles(deps.Ctx, clanko.ArticleFilter{})
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No archived articles.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", d.FetchedAt.Format("2006-01-02 15:04"), d.ID, d.Slug, d.SourceURL)
	}
	return nil
}
