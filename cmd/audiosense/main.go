package main

import (
	"audiosense/cmd/audiosense/cmd"
)

func main() {
	cmd.Execute()
}
