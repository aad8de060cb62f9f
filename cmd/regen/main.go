// Command regen writes Go register maps from CMSIS-SVD, YAML or Starlark
// device descriptions.
//
//	regen -o crc.go -p stm32f072x stm32f072x.svd CRC
//	regen -y stm32f072x.yaml stm32f072x.svd
//	regen -s stm32f072x.star
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/ezrec/mmreg/gen"
)

func main() {
	var output string
	var pkg string
	var tags string
	var importPath string
	var yamlOut string
	var interactive bool
	var verbose bool

	flag.StringVar(&output, "o", "", "Go output file (default standard output)")
	flag.StringVar(&pkg, "p", "", "Go package name (default from the device name)")
	flag.StringVar(&tags, "b", "", "Build constraint of the output")
	flag.StringVar(&importPath, "i", gen.DEFAULT_IMPORT, "Import path of the bitfield package")
	flag.StringVar(&yamlOut, "y", "", "Dump the device as YAML to this file")
	flag.BoolVar(&interactive, "s", false, "Interactive shell")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("%v: %v: description file", os.Args[0], ErrArgument)
	}
	path := flag.Arg(0)
	names := flag.Args()[1:]

	dev, err := loadDevice(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	if verbose {
		log.Printf("%v: %v, %d peripherals", path, dev.Name, len(dev.Peripherals))
	}

	if pkg == "" {
		pkg = gen.PackageName(dev.Name)
	}
	generator := &gen.Generator{
		Options: gen.Options{
			Package: pkg,
			Import:  importPath,
			Tags:    tags,
			Source:  filepath.Base(path),
		},
		Verbose: verbose,
	}

	if len(yamlOut) != 0 {
		err = dumpYAML(yamlOut, dev)
		if err != nil {
			log.Fatalf("%v: %v", yamlOut, err)
		}
	}

	if interactive {
		sh := &shell{dev: dev, gen: generator, out: os.Stdout}
		err = sh.run()
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	// A YAML dump alone does not generate Go.
	if len(yamlOut) != 0 && len(output) == 0 {
		return
	}

	if len(output) != 0 && output != "-" {
		err = generator.WriteFile(output, dev, names...)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	src, err := generator.Generate(dev, names...)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	_, err = os.Stdout.Write(src)
	if err != nil {
		log.Fatal(err)
	}
}
