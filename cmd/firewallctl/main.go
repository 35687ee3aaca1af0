package main

import (
	"log"
	"os"

	"firewall/presentation/cli"
)

func main() {
	if err := cli.NewClientApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
