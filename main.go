package main

import "github.com/tsdtsdtsd/stasis/cmd"

func main() {
	cmd.Execute()
}
