package main

import "github.com/voxctl/voxctl/cmd"

func main() {
	cmd.Execute()
}
