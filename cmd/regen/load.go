package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/mmreg/device"
	"github.com/ezrec/mmreg/translate"
)

// loadDevice reads a description, choosing the loader by file extension.
func loadDevice(path string) (dev *device.Device, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".star" {
		dev, err = device.LoadScript(path, nil)
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	switch ext {
	case ".svd", ".xml":
		dev, err = device.ParseSVD(inf)
	case ".yaml", ".yml":
		dev, err = device.LoadYAML(inf)
	default:
		err = translate.Errorf(ErrFormat, "%v", ext)
	}
	return
}

// create opens path for writing, with "-" for standard output.
func create(path string) (ouf *os.File, err error) {
	if path == "-" {
		ouf = os.Stdout
		return
	}
	ouf, err = os.Create(path)
	return
}

// dumpYAML writes the device description to path, or "-" for standard output.
func dumpYAML(path string, dev *device.Device) (err error) {
	ouf, err := create(path)
	if err != nil {
		return
	}
	if ouf != os.Stdout {
		defer ouf.Close()
	}
	err = dev.WriteYAML(ouf)
	return
}
