package main

import (
	"fmt"
	"os"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/hack/cpu"
	"github.com/Urethramancer/hack/disassembler"
)

func main() {
	opt := arg.New("hackdis")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "r", "raw", "Input holds big-endian binary words instead of text.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "l", "labels", "Generate labels for jump targets.", false, false, arg.VarBool, nil)
	opt.SetPositional("INPUT", "Image file to disassemble.", "", true, arg.VarString)
	opt.SetPositional("OUTPUT", "Assembly output file (default: standard output).", "", false, arg.VarString)

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

	inputFile := opt.GetPosString("INPUT")
	outputFile := opt.GetPosString("OUTPUT")

	data, err := os.ReadFile(inputFile)
	if err != nil {
		logrus.WithError(err).Fatal("reading input file")
	}

	var words []uint16
	if opt.GetBool("raw") {
		words, err = cpu.BytesToWords(data)
	} else {
		words, err = cpu.ParseImage(string(data))
	}
	if err != nil {
		logrus.WithError(err).WithField("input", inputFile).Fatal("loading image")
	}

	disassemble := disassembler.Disassemble
	if opt.GetBool("labels") {
		disassemble = disassembler.DisassembleLabels
	}
	text, err := disassemble(words)
	if err != nil {
		logrus.WithError(err).WithField("input", inputFile).Fatal("disassembly failed")
	}

	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		logrus.WithError(err).Fatal("writing output file")
	}
	logrus.WithField("output", outputFile).Info("disassembly written")
}
