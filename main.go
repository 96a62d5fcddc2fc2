package main

import "github.com/alexiusacademia/gorcframe/cmd"

func main() {
	cmd.Execute()
}
