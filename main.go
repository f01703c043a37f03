package main

import "timecop/cmd"

func main() {
	cmd.Execute()
}
