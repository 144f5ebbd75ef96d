package main

import "github.com/goodfoods/goodfoods/cmd"

func main() {
	cmd.Execute()
}
