package main

import "github.com/userdesk/userdesk/cmd"

func main() {
	cmd.Execute()
}
