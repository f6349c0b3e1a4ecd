package main

import "github.com/chrisdamba/custgen/cmd"

func main() {
	cmd.Execute()
}
