package main

import "github.com/gwflow/aquifem/cmd"

func main() {
	cmd.Execute()
}
