package main

import "github.com/ValentinKolb/redmine/cmd"

func main() {
	cmd.Execute()
}
