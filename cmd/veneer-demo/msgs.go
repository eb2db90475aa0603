package main

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "A tour of the veneer rendering toolkit"

	MsgOverviewShort = "Show what this demo can do"
	MsgStylesShort   = "List the styles of the active theme"
	MsgShowShort     = "Render sample text in one style"
	MsgRenderShort   = "Render bracket markup from the command line"
	MsgEventsShort   = "Show the parse events behind a markup string"
	MsgTableShort    = "Render a bordered table from sample data"
	MsgColumnsShort  = "Show column layout, padding, and truncation"
	MsgConfigShort   = "Show the effective configuration"
	MsgInitShort     = "Write a commented veneer.toml with the defaults"
	MsgPathsShort    = "Print the configuration and data paths"
	MsgExportShort   = "Write a starter stylesheet to customize"

	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
)

// Longer texts live in msgs/ so they can be edited as plain files.
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
