package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ *root }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Program() string { return v.root.subcommand("version") }

func (v *versionCmd) Run() error {
	fmt.Printf("%s version %s\n", v.root.program, version)
	if commit != "" {
		fmt.Printf("commit %s", commit)
		if date != "" {
			fmt.Printf(" built %s", date)
		}
		fmt.Println()
	}
	return nil
}
