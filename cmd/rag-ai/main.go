// cmd/rag-ai/main.go
package main

import (
	cmd "github.com/danielaScattarella/rag-ai/internal/cli"
)

// main starts the rag-ai CLI application by delegating to the
// cobra root command defined in the ragai package. It does not
// take any arguments and does not return a value.
func main() {
	cmd.Execute()
}
