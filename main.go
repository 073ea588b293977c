package main

import "github.com/Tiliavir/planner-time-tracker/cmd"

func main() {
	cmd.Execute()
}
