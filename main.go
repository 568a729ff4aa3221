package main

import "github.com/Tiliavir/trivial-day-planner/cmd"

func main() {
	cmd.Execute()
}
