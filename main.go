package main

import "dcv-manager/cmd"

func main() {
	cmd.Execute()
}
