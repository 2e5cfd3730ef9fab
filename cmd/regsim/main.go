// regsim - registration lifecycle simulator for the platform registry.
package main

import "github.com/getregsim/regsim/pkg/cli"

func main() {
	cli.Execute()
}
