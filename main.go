package main

import "github.com/ruangkerja/leave-management/cmd"

func main() {
	cmd.Execute()
}
