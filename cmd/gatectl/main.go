package main

import "gatekeeper/cmd/gatectl/cmd"

func main() {
	cmd.Execute()
}
