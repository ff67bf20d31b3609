package main

import "github.com/pders01/wayback-context/cmd"

func main() {
	cmd.Execute()
}
