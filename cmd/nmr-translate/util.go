package main

import (
	"log"
	"os"
)

// Exit status for wrong arguments. Fatal errors exit with 1.
const exitUsage = 2

// Usagef reports a wrong argument and exits.
func Usagef(format string, v ...interface{}) {
	log.Printf(format, v...)
	os.Exit(exitUsage)
}
