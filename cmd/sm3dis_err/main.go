// Package main implements sm3dis_err - lists the disassembler error codes and their descriptions.
package main

import (
	"fmt"
	"io"
	"os"

	"sm3dis/internal/common"
)

func main() {
	printCodes(os.Stdout)
}

func printCodes(w io.Writer) {
	fmt.Fprintln(w, "sm3dis Error Code List")
	fmt.Fprintln(w)
	for _, code := range common.Codes() {
		fmt.Fprintf(w, "%d: %s - %s\n", uint32(code), code.Name(), code.Error())
	}
}
