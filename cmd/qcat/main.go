// Package main provides the qcat CLI application.
// qcat converts, filters and archives seismic event catalogs.
package main

import (
	"github.com/quakepy/qcat/cmd"
)

func main() {
	cmd.Execute()
}
