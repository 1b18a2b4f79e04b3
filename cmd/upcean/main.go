package main

import "github.com/ericlevine/upcean/cmd/upcean/cmd"

func main() {
	cmd.Execute()
}
