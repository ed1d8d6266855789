package main

import "propbook/cli"

func main() {
	cli.Execute()
}
