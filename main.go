package main

import "github.com/rhyn0/oxide-git/cmd"

func main() {
	cmd.Execute()
}
