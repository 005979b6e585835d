// cmd/reseg-import/main.go
package main

import (
	"reseg/internal/importapp"
	"reseg/internal/appshell"
)

func main() { appshell.Main(importapp.RunContext) }
