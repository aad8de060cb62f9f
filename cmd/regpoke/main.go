//go:build unix

// Command regpoke reads or writes one register field from user space.
//
//	regpoke -a 0x40023008 -o 5 -w 2        # read CRC1 CR.REV_IN
//	regpoke -a 0x40023008 -o 5 -w 2 0x3    # write it
//	regpoke -m /sys/bus/pci/devices/0000:01:00.0/resource0 -a 0x10 -s 16 -i 3 -stride 4
package main

import (
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/mmreg/translate"
)

func main() {
	var req request
	var phys string
	var stride string

	flag.StringVar(&req.path, "m", "/dev/mem", "Memory device to map")
	flag.StringVar(&phys, "a", "", "Bus address of the register")
	flag.UintVar(&req.size, "s", 32, "Register size in bits")
	flag.UintVar(&req.offset, "o", 0, "Field offset in bits")
	flag.UintVar(&req.width, "w", 0, "Field width in bits (default rest of the register)")
	flag.IntVar(&req.index, "i", 0, "Register array index")
	flag.StringVar(&stride, "stride", "0", "Register array stride in bytes (default register size)")
	flag.BoolVar(&req.verbose, "v", false, "Verbose mode")

	flag.Parse()

	var err error
	if req.phys, err = strconv.ParseUint(phys, 0, 64); err != nil {
		log.Fatalf("%v: -a: %v", os.Args[0], err)
	}
	if req.stride, err = strconv.ParseUint(stride, 0, 64); err != nil {
		log.Fatalf("%v: -stride: %v", os.Args[0], err)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		req.write = true
		if req.value, err = strconv.ParseUint(flag.Arg(0), 0, 64); err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	default:
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	value, err := run(&req)
	if err != nil {
		log.Fatalf("%v: %v", req.path, err)
	}
	translate.Fprintf(os.Stdout, "%#x\n", value)
}
