package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nvmd-desktop/nvmd-shim/internal/messages"
	"github.com/nvmd-desktop/nvmd-shim/internal/outcome"
	"github.com/nvmd-desktop/nvmd-shim/internal/resolve"
	"github.com/nvmd-desktop/nvmd-shim/internal/selector"
)

var (
	resolvedColor  = color.New(color.FgGreen)
	defaultedColor = color.New(color.FgYellow)
	failedColor    = color.New(color.FgRed)
)

// writeReport prints one line per resolved value.
func writeReport(w io.Writer, snap resolve.Snapshot) {
	writeLine(w, messages.ReportHomeLabel, orNone(snap.Home.Value), snap.Home.Status, snap.Home.Reason)
	writeLine(w, messages.ReportRootLabel, orNone(snap.InstallationRoot.Value), snap.InstallationRoot.Status, snap.InstallationRoot.Reason)
	writeLine(w, messages.ReportVersionLabel, describeSelection(snap.Selection.Value), snap.Selection.Status, snap.Selection.Reason)
	writeLine(w, messages.ReportToolchainLabel, orNone(snap.ToolchainBinDir), outcome.StatusResolved, "")
	writePath(w, messages.ReportPathLabel, snap.ToolchainPath)
	if snap.Binary == nil {
		return
	}
	writeLine(w, messages.ReportPrefixLabel, orNone(snap.Binary.Prefix.Value), snap.Binary.Prefix.Status, snap.Binary.Prefix.Reason)
	writeLine(w, messages.ReportBinaryLabel, orNone(snap.Binary.BinDir), outcome.StatusResolved, "")
	writePath(w, messages.ReportBinaryPathLabel, snap.Binary.Path)
}

func writePath(w io.Writer, label string, result outcome.Result[string]) {
	value := result.Value
	if value == "" {
		value = messages.ReportNoOverride
	}
	writeLine(w, label, value, result.Status, result.Reason)
}

func writeLine(w io.Writer, label string, value string, status outcome.Status, reason string) {
	suffix := ""
	if status != outcome.StatusResolved {
		suffix = statusColor(status).Sprintf(messages.ReportReasonFmt, status, reason)
	}
	_, _ = fmt.Fprintf(w, messages.ReportLineFmt, label, value, suffix)
}

func statusColor(status outcome.Status) *color.Color {
	switch status {
	case outcome.StatusDefaulted:
		return defaultedColor
	case outcome.StatusFailed:
		return failedColor
	default:
		return resolvedColor
	}
}

func describeSelection(sel selector.Selection) string {
	version := strings.TrimSpace(sel.Version)
	if version == "" {
		return messages.ReportNone
	}
	return fmt.Sprintf(messages.ReportSelectionFmt, version, sel.Source)
}

func orNone(value string) string {
	if value == "" {
		return messages.ReportNone
	}
	return value
}
