package main

import "github.com/repo-posture/sbom-forge/cmd"

func main() {
	cmd.Execute()
}
