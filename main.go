package main

import "github.com/ripifopo/PROGRA-PRO-CS-sub000/cmd"

func main() {
	cmd.Execute()
}
