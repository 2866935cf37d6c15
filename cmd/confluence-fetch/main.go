// Command confluence-fetch fetches wiki pages and prints them as normalised
// plain-text documents, JSON, or Markdown.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
