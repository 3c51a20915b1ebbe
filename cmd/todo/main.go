// Command todo is a single-user to-do list manager with a terminal UI and
// scriptable subcommands.
package main

import "github.com/mesh-intelligence/todolist/internal/cli"

func main() {
	cli.Execute()
}
