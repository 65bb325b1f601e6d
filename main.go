package main

import "github.com/naka-gawa/profile-readme/cmd"

func main() {
	cmd.Execute()
}
