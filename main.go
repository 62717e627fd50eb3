package main

import "github.com/dan1d/clover-sandbox-simulator/cmd"

func main() {
	cmd.Execute()
}
