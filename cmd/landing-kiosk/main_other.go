//go:build !linux

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "landing-kiosk: the framebuffer kiosk only runs on linux")
	os.Exit(1)
}
