package main

import "github.com/quatton/metashare/apps/metashare/cmd"

func main() {
	cmd.Execute()
}
