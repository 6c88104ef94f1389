package main

import "github.com/frahmantamala/timeoff-management/cmd"

func main() {
	cmd.Execute()
}
