package main

import "delivery-reconciler/cmd"

func main() {
	cmd.Execute()
}
