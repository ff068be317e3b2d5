// Package addressbook provides embedded runtime resources for the addressbook CLI.
package addressbook

import _ "embed"

// ShellHelp is the command reference printed by the interactive shell.
//
//go:embed docs/shell-help.txt
var ShellHelp string
