package main

import "github.com/KaramelBytes/chartsense/cmd"

func main() {
	cmd.Execute()
}
