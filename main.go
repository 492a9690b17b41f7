package main

import "github.com/jgranda1999/agentic-sade/cmd"

func main() {
	cmd.Execute()
}
