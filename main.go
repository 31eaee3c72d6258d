package main

import (
	"elmlink/cmd"
)

func main() {
	cmd.Execute()
}
