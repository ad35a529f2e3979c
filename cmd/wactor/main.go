package main

import "github.com/ValentinKolb/wActor/cmd"

func main() {
	cmd.Execute()
}
