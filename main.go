package main

import "github.com/kozaktomas/face-stickers/cmd"

func main() {
	cmd.Execute()
}
