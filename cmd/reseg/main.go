// cmd/reseg/main.go
package main

import (
	"reseg/internal/app"
	"reseg/internal/appshell"
)

func main() { appshell.Main(app.RunContext) }
