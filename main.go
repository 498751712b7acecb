package main

import "github.com/jortega/finanzas/cmd"

func main() {
	cmd.Execute()
}
