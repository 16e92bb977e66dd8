//go:build !js || !wasm

package main

import (
	"fmt"
	"os"
)

func main() {
	_, _ = fmt.Fprintln(os.Stderr, "build with GOOS=js GOARCH=wasm")
	os.Exit(1)
}
