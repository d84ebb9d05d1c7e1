package main

import "github.com/gaurav-prasanna/issuepipe/cmd"

func main() {
	cmd.Execute()
}
