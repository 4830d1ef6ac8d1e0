package main

import "github.com/samiconductor/ghradl/cmd"

func main() {
	cmd.Execute()
}
