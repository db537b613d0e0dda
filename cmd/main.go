package main

import "forum-client/internal/cli"

func main() {
	cli.Execute()
}
