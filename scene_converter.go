package main

import (
	"github.com/mogaika/gbe_scene_converter/cmd"
)

func main() {
	cmd.Execute()
}
