// settingsctl inspects a settings schema and its translation bundles.
//
//	settingsctl paths    [--schema FILE] [--settable]
//	settingsctl validate [--schema FILE] [--bundles DIR] [--fallback LOCALE]
//	settingsctl resolve  [--schema FILE] [--bundles DIR] [--locale LOCALE] PATH...
//
// Without --schema the built-in definition is used; without --bundles the
// embedded bundles are.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/pflag"

	"alvrsettings/internal/definition"
	"alvrsettings/internal/domain/schema"
	"alvrsettings/internal/infrastructure/i18n"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failColor = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor = color.New(color.FgYellow).SprintFunc()
	kindColor = color.New(color.FgCyan).SprintFunc()
	dimColor  = color.New(color.Faint).SprintFunc()
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	schemaFile string
	bundleDir  string
	fallback   string
	locale     string
	settable   bool
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	cmd, args := args[0], args[1:]

	var opts options
	flags := pflag.NewFlagSet("settingsctl "+cmd, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&opts.schemaFile, "schema", "", "YAML schema definition (default: built-in)")
	flags.StringVar(&opts.bundleDir, "bundles", "", "directory of .toml/.json/.jsonc bundles (default: embedded)")
	flags.StringVar(&opts.fallback, "fallback", "en", "fallback locale")
	flags.StringVarP(&opts.locale, "locale", "l", "en", "locale to resolve texts in")
	flags.BoolVar(&opts.settable, "settable", false, "only list settable paths")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	var err error
	switch cmd {
	case "paths":
		err = paths(stdout, opts)
	case "validate":
		err = validate(stdout, opts)
	case "resolve":
		err = resolve(stdout, opts, flags.Args())
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s %v\n", failColor("error:"), err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: settingsctl <command> [flags]

Commands:
  paths      list every path of the schema
  validate   check that every named path has a name in every bundle
  resolve    print the localized name and description of paths
`)
}

func loadTree(opts options) (*schema.Tree, error) {
	if opts.schemaFile == "" {
		return schema.Build(definition.ALVR())
	}
	return schema.LoadFile(opts.schemaFile)
}

func loadTranslator(opts options) (*i18n.Translator, error) {
	if opts.bundleDir == "" {
		return i18n.NewTranslator(opts.fallback)
	}
	return i18n.LoadDir(opts.bundleDir, opts.fallback)
}

func paths(w io.Writer, opts options) error {
	tree, err := loadTree(opts)
	if err != nil {
		return err
	}
	for _, p := range tree.Paths() {
		if n, ok := tree.Lookup(p); ok {
			if opts.settable && !n.Settable() {
				continue
			}
			fmt.Fprintf(w, "%-8s %s\n", kindColor(n.Kind()), p)
			continue
		}
		if !opts.settable {
			fmt.Fprintf(w, "%-8s %s\n", kindColor("variant"), p)
		}
	}
	return nil
}

func validate(w io.Writer, opts options) error {
	tree, err := loadTree(opts)
	if err != nil {
		return err
	}
	tr, err := loadTranslator(opts)
	if err != nil {
		return err
	}

	orphans := tr.Orphans(tree)
	locales := make([]string, 0, len(orphans))
	for locale := range orphans {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	for _, locale := range locales {
		for _, key := range orphans[locale] {
			fmt.Fprintf(w, "%s [%s] %s\n", warnColor("orphan"), locale, key)
		}
	}

	if err := tr.Validate(tree); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %d named paths resolve in %v\n", okColor("ok"), len(tree.NamedPaths()), tr.Locales())
	return nil
}

func resolve(w io.Writer, opts options, paths []string) error {
	if len(paths) == 0 {
		return errors.New("resolve needs at least one path")
	}
	tr, err := loadTranslator(opts)
	if err != nil {
		return err
	}
	for _, p := range paths {
		name, err := tr.Resolve(p, schema.FieldName, opts.locale)
		if err != nil {
			return err
		}
		desc, err := tr.Resolve(p, schema.FieldDescription, opts.locale)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n  %s\n", dimColor(p), name)
		if desc != "" {
			fmt.Fprintf(w, "  %s\n", desc)
		}
	}
	return nil
}
