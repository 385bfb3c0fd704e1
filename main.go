package main

import (
	"os"

	"github.com/encoderlee/eosapi/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
