package main

import (
	"github.com/espressodb/gobarman/pkg/output"
)

func main() {
	initTemplateFormatting()

	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
	}

	// The exit code reflects whether any error was recorded during the
	// run; aggregating writers emit their summary here.
	output.CloseAndExit()
}
