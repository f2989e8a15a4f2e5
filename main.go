package main

import "github.com/nickmilo/gravity-index/cmd"

func main() {
	cmd.Execute()
}
