// Command seocascade resolves the SEO cascade of a page held in a YAML
// fixture and prints it as JSON.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
