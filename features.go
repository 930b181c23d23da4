package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"
)

// Version is stamped with -ldflags "-X main.Version=..."; module builds fall
// back to the module version.
var Version = "dev"

// compiledFeatures is filled by init() in each optional backend file.
var compiledFeatures []string

func buildVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

func printFeatures(w io.Writer) {
	fmt.Fprintf(w, "sfxsynth %s (%s, %s/%s)\n", buildVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
	features := slices.Sorted(slices.Values(compiledFeatures))
	if len(features) == 0 {
		fmt.Fprintln(w, "no optional features")
		return
	}
	fmt.Fprintln(w, "features:")
	for _, f := range features {
		fmt.Fprintf(w, "  %s\n", f)
	}
}
