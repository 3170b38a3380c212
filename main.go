// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/fatih/color"

	"whilec/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	fmt.Printf("Welcome to the while REPL, %s!\n", currentUser.Username)
	fmt.Println("Type a program, then a blank line to compile it. :help lists commands.")

	err = repl.Start(os.Stdin, os.Stdout, repl.Options{Format: "text", Color: !color.NoColor})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
