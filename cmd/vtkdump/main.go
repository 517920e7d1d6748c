// vtkdump prints the elements and decoded arrays of a VTK XML file.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/robert-malhotra/go-vtkxml/vtkxml"
)

type dumpCommand struct {
	file       *string
	configFile *string
	chunkSize  *int
	logLevel   *string
	maxValues  *int
}

func addDumpCommand(app *kingpin.Application) *dumpCommand {
	cmd := &dumpCommand{}
	cmd.file = app.Arg("file", "The VTK XML file to print.").Required().ExistingFile()
	cmd.configFile = app.Flag("config.file", "YAML configuration file.").String()
	cmd.chunkSize = app.Flag("chunk-size", "Bytes read from the file at a time.").Int()
	cmd.logLevel = app.Flag("log.level", "Only log messages with the given severity or above. One of: [debug, info, warn, error]").
		Enum("debug", "info", "warn", "error")
	cmd.maxValues = app.Flag("max-values", "Maximum number of values printed per array, 0 prints all.").Default("-1").Int()
	return cmd
}

// config merges the configuration file with the flags set on the command line.
func (cmd *dumpCommand) config() (vtkxml.Config, error) {
	cfg := vtkxml.DefaultConfig()
	if *cmd.configFile != "" {
		var err error
		if cfg, err = vtkxml.LoadConfig(*cmd.configFile); err != nil {
			return cfg, err
		}
	}
	if *cmd.chunkSize != 0 {
		cfg.ChunkSize = *cmd.chunkSize
	}
	if *cmd.logLevel != "" {
		cfg.LogLevel = *cmd.logLevel
	}
	if *cmd.maxValues >= 0 {
		cfg.MaxPrintedValues = *cmd.maxValues
	}
	return cfg, cfg.Validate()
}

func (cmd *dumpCommand) run(w io.Writer) error {
	cfg, err := cmd.config()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	doc, err := vtkxml.ParseFile(*cmd.file, vtkxml.WithConfig(cfg), vtkxml.WithLogger(logger))
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "parsed file", "file", *cmd.file, "arrays", len(doc.Arrays()))
	return dump(w, doc, cfg.MaxPrintedValues)
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return log.With(level.NewFilter(logger, opt), "ts", log.DefaultTimestampUTC)
}

// dump prints one line per element in document order, indented by depth.
func dump(w io.Writer, doc *vtkxml.Document, maxValues int) error {
	bold := color.New(color.Bold)
	return vtkxml.Walk(doc.Root, func(path string, el *vtkxml.Element) error {
		line := strings.Repeat("  ", strings.Count(path, "/")-1) + bold.Sprint(el.Name)
		if p := payload(el, maxValues); p != "" {
			line += " " + p
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

// payload describes an element: the decoded array of a DataArray, the
// attributes and text of anything else.
func payload(el *vtkxml.Element, maxValues int) string {
	if a := el.Data; a != nil {
		return fmt.Sprintf("%q %s %v (%s): %s",
			el.Attr["Name"], a.Kind, a.Shape(), humanize.Bytes(uint64(a.ByteSize())), formatValues(a, maxValues))
	}

	keys := make([]string, 0, len(el.Attr))
	for k := range el.Attr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, el.Attr[k]))
	}
	if text := strings.TrimSpace(el.Text); text != "" {
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

func formatValues(a *vtkxml.Array, maxValues int) string {
	if maxValues == 0 || a.Len() <= maxValues {
		return a.String()
	}
	return fmt.Sprintf("%v ... (%d more)", a.Slice(0, maxValues), a.Len()-maxValues)
}

func exitWithErr(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
	os.Exit(1)
}

func main() {
	app := kingpin.New("vtkdump", "Print the elements and data arrays of a VTK XML file.")
	app.HelpFlag.Short('h')
	cmd := addDumpCommand(app)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := cmd.run(os.Stdout); err != nil {
		exitWithErr(err)
	}
}
