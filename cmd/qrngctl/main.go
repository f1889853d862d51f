package main

import (
	"github.com/malinowski-marek/qrng/cmd/qrngctl/cmd"
	"github.com/malinowski-marek/qrng/internal/common"
)

func main() {
	common.ConfigureCommandLineLogging()
	cmd.Execute()
}
