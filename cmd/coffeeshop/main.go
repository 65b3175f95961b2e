package main

import "github.com/linemk/coffee-shop/internal/cli"

func main() {
	cli.Execute()
}
