package main

import "github.com/vandre-sales/mlv-combo-nodes/cmd"

// Build is set via ldflags at build time
var Build = "unknown"

func main() {
	cmd.SetBuild(Build)
	cmd.Execute()
}
