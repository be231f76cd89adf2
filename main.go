package main

import "github.com/appsurify/testbrain/cmd"

func main() {
	cmd.Execute()
}
