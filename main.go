package main

import "destination-sync/cmd"

func main() {
	cmd.Execute()
}
