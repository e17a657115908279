package main

import "github.com/mvartia/plexwatch/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
