package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	// Execute the root command. Cobra handles parsing the arguments.
	err := rootCmd.Execute()
	stopTracing()
	if err != nil {
		log.Errorf("fitlog: %v", err)
		os.Exit(1)
	}
}
