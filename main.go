package main

import (
	"github.com/leetcs/gomonday/cmd"
)

func main() {
	cmd.Execute()
}
