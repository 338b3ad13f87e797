package main

import "srtbadge/cmd"

func main() {
	cmd.Execute()
}
