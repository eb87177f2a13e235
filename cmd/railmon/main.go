package main

import "github.com/OpenTraceLab/railmon/cmd/railmon/cmd"

func main() {
	cmd.Execute()
}
