package main

import "github.com/alexiusacademia/gocoil/cmd"

func main() {
	cmd.Execute()
}
