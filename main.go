package main

import (
	"log"
	"os"

	"github.com/ByLCY/justify/internal/cli"
)

func main() {
	if err := cli.Execute(nil, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatalf("justify: %v", err)
	}
}
