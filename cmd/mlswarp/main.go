package main

import (
	"github.com/MeKo-Tech/mlswarp/cmd/mlswarp/cmd"
)

func main() {
	cmd.Execute()
}
