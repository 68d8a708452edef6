package main

import "github.com/comitanigiacomo/kanso-wellness/internal/cli"

func main() {
	cli.Execute()
}
