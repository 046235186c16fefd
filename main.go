/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package main

import (
	"github.com/josephgoksu/tasks/cmd"
	"github.com/josephgoksu/tasks/internal/logger"
)

func main() {
	defer logger.HandlePanic()
	cmd.Execute()
}
