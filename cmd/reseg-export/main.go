// cmd/reseg-export/main.go
package main

import (
	"reseg/internal/exportapp"
	"reseg/internal/appshell"
)

func main() { appshell.Main(exportapp.RunContext) }
