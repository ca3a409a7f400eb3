package main

import "github.com/ardanlabs/chainlab/app/tooling/labctl/cmd"

func main() {
	cmd.Execute()
}
