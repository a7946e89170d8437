package main

import "github.com/josephlewis42/sheller/cmd"

func main() {
	cmd.Execute()
}
