package main

import (
	"runtime/debug"
	"strings"
)

// unrepresentativeBuild reports why the running binary would skew timings,
// or "" if its build settings look like a normal release build.
func unrepresentativeBuild(info *debug.BuildInfo) string {
	for _, s := range info.Settings {
		switch s.Key {
		case "-race", "-msan", "-asan":
			if s.Value == "true" {
				return s.Key + " enabled"
			}
		case "-gcflags":
			// -N disables optimisations, -l disables inlining.
			for _, flag := range strings.Fields(s.Value) {
				flag = flag[strings.LastIndex(flag, "=")+1:]
				if flag == "-N" || flag == "-l" {
					return "-gcflags " + s.Value
				}
			}
		}
	}
	return ""
}
