package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/arjunbhagat/rle-engine/benchmark"
	"github.com/arjunbhagat/rle-engine/engine"
	"github.com/arjunbhagat/rle-engine/rle"
)

var Commands = [...]string{"deflate", "inflate", "benchmark", "help"}

func main() {
	application := os.Args[0]
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	deflateCmd := flag.Bool(Commands[0], false, "Deflate File")
	inflateCmd := flag.Bool(Commands[1], false, "Inflate File")
	benchmarkCmd := flag.Bool(Commands[2], false, "Benchmark File")
	helpCmd := flag.Bool(Commands[3], false, "Help")
	verboseFlag := flag.Bool("verbose", false, "Print trace logging from the rle package")

	if len(os.Args) == 1 {
		fmt.Println("Please provide commands")
		os.Exit(1)
	}
	commandArgs := findIntersection(
		[]string{
			"--deflate",
			"--inflate",
			"--benchmark",
			"--verbose",
		},
		os.Args[1:],
	)
	flag.CommandLine.Parse(commandArgs)
	rle.Verbose = *verboseFlag
	commandsSelected := countTrue([]bool{*deflateCmd, *inflateCmd, *benchmarkCmd})
	if commandsSelected > 1 {
		fmt.Println("Specify a single command")
		os.Exit(1)
	} else if commandsSelected == 0 {
		commandArgs = findIntersection(
			[]string{
				"--help",
			},
			os.Args[1:],
		)
		flag.CommandLine.Parse(commandArgs)
		if *helpCmd {
			fmt.Fprintf(os.Stderr, "Usage of %s:\n", application)
			fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join(Commands[:], ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			flag.PrintDefaults()
			return
		}
		fmt.Println("No command is selected. Deflating by default")
		cmdTrue := true
		deflateCmd = &cmdTrue
	}

	if *deflateCmd {
		deflateFS := flag.NewFlagSet("deflate", flag.ExitOnError)
		deflateFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --deflate [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join([]string{"delete, outfileext, help"}, ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			deflateFS.PrintDefaults()
			return
		}
		deleteAfterDeflate := deflateFS.Bool("delete", false, "Delete file after deflating")
		helpDeflate := deflateFS.Bool("help", false, "Deflate Help")
		outputFileExtension := deflateFS.String("outfileext", "rle", "File extension used for the result")
		commandArgs = findIntersection(
			[]string{
				"--delete",
				"--outfileext",
			},
			os.Args[2:],
		)
		if len(commandArgs) == 0 {
			commandArgs = findIntersection(
				[]string{
					"--help",
				},
				os.Args[2:],
			)
		}
		deflateFS.Parse(commandArgs)
		if *helpDeflate {
			deflateFS.Usage()
		}

		files := filesFromArgs()
		if err := engine.DeflateFiles(files, *outputFileExtension); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if *deleteAfterDeflate {
			deleteFiles(files)
		}
	}

	if *inflateCmd {
		inflateFS := flag.NewFlagSet("inflate", flag.ExitOnError)
		inflateFS.Usage = func() {
			fmt.Fprintf(os.Stderr, "Usage of %s --inflate [OPTIONS] <file(s)>\n", application)
			fmt.Fprintf(os.Stderr, "Valid commands include:\n\t%s\n", strings.Join([]string{"delete, help"}, ", "))
			fmt.Fprintf(os.Stderr, "Flag:\n")
			inflateFS.PrintDefaults()
			return
		}
		deleteAfterInflate := inflateFS.Bool("delete", false, "Delete file after inflating")
		helpInflate := inflateFS.Bool("help", false, "Inflate Help")
		commandArgs = findIntersection(
			[]string{
				"--delete",
			},
			os.Args[2:],
		)
		if len(commandArgs) == 0 {
			commandArgs = findIntersection(
				[]string{
					"--help",
				},
				os.Args[2:],
			)
		}
		inflateFS.Parse(commandArgs)
		if *helpInflate {
			inflateFS.Usage()
		}

		files := filesFromArgs()
		if err := engine.InflateFiles(files); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if *deleteAfterInflate {
			deleteFiles(files)
		}
	}

	if *benchmarkCmd {
		files := filesFromArgs()
		if err := benchmark.Command.Run(append([]string{application}, os.Args[2:]...)); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		_ = files
	}
}

// filesFromArgs extracts the comma-separated file list following the
// selected subcommand's flags, the same positional convention the
// teacher's --compress handling already used.
func filesFromArgs() []string {
	var fileName string
	if len(os.Args) > 1 {
		i := 1
		for ; i < len(os.Args) && os.Args[i][0] == '-'; i++ {
		}
		if i == len(os.Args) {
			fmt.Println("No file provided")
			os.Exit(1)
		}
		fileName = os.Args[i]
	}
	if strings.Contains(fileName, ",") {
		for _, f := range strings.Split(fileName, ",") {
			if _, err := os.Stat(f); os.IsNotExist(err) {
				fmt.Printf("Could not open the provided file %s\n", f)
				os.Exit(1)
			}
		}
	} else if _, err := os.Stat(fileName); os.IsNotExist(err) {
		fmt.Printf("Could not open the provided file %s\n", fileName)
		os.Exit(1)
	}
	files := strings.Split(fileName, ",")
	trimSpace(files)
	return files
}

func countTrue(commands []bool) int {
	count := 0
	for _, c := range commands {
		if c == true {
			count++
		}
	}
	return count
}

func findIntersection(commandList, argList []string) []string {
	set := make(map[string]struct{}, len(commandList))
	for _, c := range commandList {
		set[c] = struct{}{}
	}
	var out []string
	for _, arg := range argList {
		if _, ok := set[arg]; ok {
			out = append(out, arg)
		}
	}
	return out
}

func trimSpace(s []string) {
	for i := range s {
		s[i] = strings.TrimSpace(s[i])
	}
}

func deleteFiles(files []string) {
	for _, file := range files {
		if err := os.Remove(file); err != nil {
			panic(err)
		}
	}
}
