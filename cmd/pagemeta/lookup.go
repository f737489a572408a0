package main

import (
	"encoding/json"

	"github.com/fwojciec/pagemeta"
)

// Run executes the lookup command. The response, or the error response on
// failure, is written to stdout as indented JSON.
func (c *LookupCmd) Run(deps *Dependencies) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")

	resp, err := deps.Metadata.LookupMetadata(deps.Ctx, c.URL)
	if err != nil {
		_ = enc.Encode(pagemeta.NewErrorResponse(err))
		return err
	}
	return enc.Encode(resp)
}
