package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/mmreg/device"
	"github.com/ezrec/mmreg/gen"
	"github.com/ezrec/mmreg/translate"
)

// shell browses a device and writes its peripherals on demand.
type shell struct {
	dev *device.Device
	gen *gen.Generator
	out io.Writer
}

const shellHelp = `Commands:
 l                       list peripherals
 p <peripheral>          print a peripheral
 w <peripheral> [file]   write the Go register map of a peripheral
 d [file]                dump the device as YAML
 h                       print this menu
 q                       quit
`

func (sh *shell) peripheral(args []string) (p *device.Peripheral, err error) {
	if len(args) == 0 {
		err = translate.Errorf(ErrArgument, "peripheral")
		return
	}
	p, ok := sh.dev.Peripheral(args[0])
	if !ok {
		err = &device.PathError{Path: args[0], Err: device.ErrPeripheralMissing}
	}
	return
}

func (sh *shell) list() {
	for _, p := range sh.dev.Peripherals {
		var insts []string
		for _, inst := range p.Instances {
			insts = append(insts, fmt.Sprintf("%v@%#x", inst.Name, inst.BaseAddress))
		}
		translate.Fprintf(sh.out, "%-12v %-8v %3d registers  %v\n",
			p.Name, p.Group, len(p.Registers), strings.Join(insts, " "))
	}
}

// exec runs one command line.
func (sh *shell) exec(line string) (quit bool, err error) {
	words, err := shlex.Split(line)
	if err != nil || len(words) == 0 {
		return
	}
	cmd, args := words[0], words[1:]

	switch cmd {
	case "l":
		sh.list()
	case "p":
		var p *device.Peripheral
		if p, err = sh.peripheral(args); err != nil {
			return
		}
		enc := yaml.NewEncoder(sh.out)
		enc.SetIndent(2)
		err = enc.Encode(p)
	case "w":
		var p *device.Peripheral
		if p, err = sh.peripheral(args); err != nil {
			return
		}
		path := gen.PackageName(p.Name) + ".go"
		if len(args) > 1 {
			path = args[1]
		}
		err = sh.gen.WriteFile(path, sh.dev, p.Name)
		if err == nil {
			translate.Fprintf(sh.out, "%v: wrote %v\n", p.Name, path)
		}
	case "d":
		if len(args) == 0 {
			err = sh.dev.WriteYAML(sh.out)
			return
		}
		err = dumpYAML(args[0], sh.dev)
	case "h", "?":
		translate.Fprintf(sh.out, shellHelp)
	case "q":
		quit = true
	default:
		err = ErrCommand(cmd)
	}

	return
}

// run reads commands from the terminal until q or end of input.
func (sh *shell) run() (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "regen> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return
	}
	defer rl.Close()

	sh.out = rl.Stdout()
	translate.Fprintf(sh.out, "%v: %d peripherals (h for help)\n", sh.dev.Name, len(sh.dev.Peripherals))

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err != nil {
			return nil
		}

		quit, err := sh.exec(line)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err)
		}
		if quit {
			return nil
		}
	}
}
