package main

import "github.com/charmbracelet/vport/internal/cmd"

func main() {
	cmd.Execute()
}
