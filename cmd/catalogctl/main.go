package main

import "github.com/CodeVantage/codevantage-backend/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
