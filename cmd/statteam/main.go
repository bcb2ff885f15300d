// cmd/statteam/main.go
// This is the entry point for the statteam binary.
// The "cmd/statteam" directory follows a common Go convention: the cmd/ folder holds executable
// binaries, and internal/ holds packages that are not meant to be imported by other projects.
package main

import "github.com/trentd187/statteam/internal/cli"

func main() {
	cli.Execute()
}
