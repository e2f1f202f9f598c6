package main

import (
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"pokercore/internal/config"
)

var output = flag.String("o", "", "write the configuration to a file instead of stdout")

// generate-config prints the default configuration, a starting point for config.yaml
func main() {
	flag.Parse()

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logrus.WithError(err).Fatal("could not create config file")
		}
		defer f.Close()

		w = f
	}

	if err := yaml.NewEncoder(w).Encode(config.DefaultConfig()); err != nil {
		logrus.WithError(err).Fatal("could not encode config")
	}
}
