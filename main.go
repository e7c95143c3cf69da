package main

import "AdminBackend/cmd"

func main() {
	cmd.Execute()
}
