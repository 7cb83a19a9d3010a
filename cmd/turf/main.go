package main

import "turf/cmd/turf/root"

func main() {
	root.Execute()
}
