package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"

	"github.com/Urethramancer/hack/assembler"
	"github.com/Urethramancer/hack/config"
	"github.com/Urethramancer/hack/cpu"
)

func main() {
	opt := arg.New("hackasm")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "c", "config", "TOML configuration file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "o", "output", "Output path (default: input with the configured extension).", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "strict", "Reject labels declared more than once.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "r", "raw", "Write big-endian binary words instead of text.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "y", "symbols", "Print the label and variable table.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Show debug output.", false, false, arg.VarBool, nil)
	opt.SetPositional("INPUT", "Assembly source file.", "", true, arg.VarString)

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

	cfg, err := config.Load(opt.GetString("config"))
	if err != nil {
		logrus.WithError(err).Fatal("configuration failed")
	}
	if opt.GetBool("strict") {
		cfg.StrictLabels = true
	}
	logrus.SetLevel(cfg.Level())
	if opt.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	input := opt.GetPosString("INPUT")
	output := opt.GetString("output")
	raw := opt.GetBool("raw")
	if output == "" {
		ext := cfg.OutputExt
		if raw {
			ext = ".bin"
		}
		output = config.OutputPath(input, ext)
	}

	log := logrus.WithField("input", input)
	asm := assembler.New(
		assembler.WithLogger(log),
		assembler.WithStrictLabels(cfg.StrictLabels),
	)
	if err := run(asm, input, output, raw); err != nil {
		log.WithError(err).Fatal("assembly failed")
	}
	log.WithField("output", output).Info("assembled")

	if opt.GetBool("symbols") {
		printSymbols(asm.Symbols())
	}
}

// run assembles input and writes the image to output only when every stage
// succeeded.
func run(asm *assembler.Assembler, input, output string, raw bool) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	words, err := asm.AssembleReader(f)
	if err != nil {
		return err
	}

	data := []byte(assembler.FormatImage(words))
	if raw {
		data = cpu.WordsToBytes(words)
	}
	return writeFile(output, data)
}

// writeFile replaces path through a temporary sibling so a failed write
// never leaves a partial image.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func printSymbols(st *assembler.SymbolTable) {
	dump := func(title string, m map[string]uint16) {
		names := make([]string, 0, len(m))
		for k := range m {
			names = append(names, k)
		}
		sort.Slice(names, func(i, j int) bool {
			if m[names[i]] != m[names[j]] {
				return m[names[i]] < m[names[j]]
			}
			return names[i] < names[j]
		})
		fmt.Println(title)
		for _, n := range names {
			fmt.Printf("  %-24s %5d\n", n, m[n])
		}
	}
	dump("Labels:", st.Labels())
	dump("Variables:", st.Variables())
}
