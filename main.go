package main

import "github.com/user/cspm-sim/cmd"

func main() {
	cmd.Execute()
}
