package main

import "bookocean-backend/internal/cli"

func main() {
	cli.Execute()
}
