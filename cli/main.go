package main

import "github.com/lognitor/go-callsite/cli/cmd"

func main() {
	cmd.Execute()
}
