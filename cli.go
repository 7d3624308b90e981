//go:build cli
// +build cli

package main

import (
	_ "shopledger.GO/custom"

	"shopledger.GO/cmd"
	"shopledger.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
