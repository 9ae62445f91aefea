package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/cpu"
)

// This program loads a text image, or assembles a source file, runs it on
// the emulator and dumps the registers and the requested RAM words.
func main() {
	opt := arg.New("hackrun")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "n", "steps", "Maximum number of instructions to execute.", 100000, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "d", "dump", "Comma-separated RAM addresses to print.", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Show debug output.", false, false, arg.VarBool, nil)
	opt.SetPositional("INPUT", "Image (.hack) or assembly (.asm) file.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		logrus.WithError(err).Fatal("invalid arguments")
	}
	if opt.GetBool("help") {
		opt.PrintHelp()
		return
	}
	if opt.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	input := opt.GetPosString("INPUT")
	log := logrus.WithField("input", input)
	words, err := load(input, log)
	if err != nil {
		log.WithError(err).Fatal("loading program")
	}

	c := cpu.New()
	if err := c.LoadCode(words); err != nil {
		log.WithError(err).Fatal("loading program")
	}
	steps, err := c.Run(opt.GetInt("steps"))
	if err != nil {
		log.WithError(err).WithField("pc", c.PC).Fatal("execution failed")
	}
	log.WithFields(logrus.Fields{"steps": steps, "halted": c.Halted()}).Debug("run finished")

	fmt.Printf("PC=%d A=%d D=%d cycles=%d\n", c.PC, c.A, int16(c.D), c.Cycles)
	for _, s := range strings.Split(opt.GetString("dump"), ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		addr, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			log.WithError(err).Fatal("invalid dump address")
		}
		v, err := c.Peek(uint16(addr))
		if err != nil {
			log.WithError(err).Fatal("invalid dump address")
		}
		fmt.Printf("RAM[%d]=%d\n", addr, int16(v))
	}
}

func load(path string, log *logrus.Entry) ([]uint16, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".asm") {
		return assembler.New(assembler.WithLogger(log)).Assemble(string(data))
	}
	return cpu.ParseImage(string(data))
}
