package main

import (
	"fmt"

	"github.com/fwojciec/clanko"
)

// Run executes the fetch command and prints the written path.
func (c *FetchCmd) Run(deps *Dependencies) error {
	doc, err := deps.Scraper.Scrape(deps.Ctx, c.URL)
	if err != nil {
		return err
	}

	path, err := deps.Exporter.Export(deps.Ctx, clanko.FormatDocument(doc), doc.Slug)
	if err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, path)
	return nil
}
