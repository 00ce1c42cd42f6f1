package main

import "github.com/pfrederiksen/baraj-doluluk/internal/cli"

func main() {
	cli.Execute()
}
