package main

import "gramline-backend/cmd"

func main() {
	cmd.Run()
}
