// Command fieldcheck reports bitfield descriptors with constant layouts
// that would panic at program start.
//
//	go vet -vettool=$(which fieldcheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/ezrec/mmreg/fieldcheck"
)

func main() {
	singlechecker.Main(fieldcheck.Analyzer)
}
