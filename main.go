package main

import (
	"os"
	"runtime/debug"

	"github.com/llehouerou/sound/internal/cli"
)

func main() {
	if err := cli.Execute(appVersion()); err != nil {
		os.Exit(1)
	}
}

func appVersion() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown-(no build info)"
	}

	version := bi.Main.Version
	if version == "" {
		version = "unknown-(no version)"
	}

	return version
}
