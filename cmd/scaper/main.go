package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scaper <sim|cs|est|deriv|obsToCsv> [flags]")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "sim":
		err = runSim(os.Args[2:])
	case "cs":
		err = runCS(os.Args[2:])
	case "est":
		err = runEst(os.Args[2:])
	case "deriv":
		err = runDeriv(os.Args[2:])
	case "obsToCsv":
		err = runObsToCSV(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "scaper: unknown subcommand %q\n", os.Args[1])
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "scaper: %v\n", err)
		os.Exit(1)
	}
}
