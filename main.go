package main

import "github.com/smith-xyz/golang-tara/cmd"

func main() {
	cmd.Execute()
}
