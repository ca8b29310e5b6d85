package cli

import (
	"github.com/keystone-labs/kbs-cli/internal/normalisers"
	"github.com/keystone-labs/kbs-cli/internal/normalisers/html"
	"github.com/keystone-labs/kbs-cli/internal/normalisers/markdown"
	"github.com/keystone-labs/kbs-cli/internal/normalisers/plaintext"
)

// fileNormalisers routes ingested files to a format normaliser by
// extension. Shared by the add and watch commands.
var fileNormalisers = defaultNormalisers()

func defaultNormalisers() *normalisers.Registry {
	r := normalisers.NewRegistry()
	r.Register(plaintext.New())
	r.Register(markdown.New())
	r.Register(html.New())
	return r
}
