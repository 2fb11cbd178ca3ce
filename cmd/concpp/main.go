package main

import (
	"github.com/cppkgs/concpp/cmd/concpp/internal"
)

func main() {
	internal.Execute()
}
