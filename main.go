// main.go

package main

import (
	"github.com/wastevision/visionctl/cmd"
	"github.com/wastevision/visionctl/pkg/logger"
)

func main() {
	logger.InitializeWithFallback()
	cmd.Execute()
}
