// Command tracetool applies trace processing steps to CSV waveform files.
//
// Usage:
//
//	tracetool [global flags] <command> [flags] FILE...
//
// Each input file holds one trace: a single column of evenly sampled
// amplitudes, or two columns of time and amplitude with --columns 2.
// Lines starting with # are ignored. Header values are assigned with
// --set, for example --set DELTA=0.01 --set KSTNM=ANMO.
//
// Examples:
//
//	tracetool info --set DELTA=0.01 a.csv b.csv
//	tracetool cut --window "B 2 B 5" --policy FILLZ -o out a.csv
//	tracetool fft --format AMPH -o out a.csv
//	tracetool merge -o merged.csv part1.csv part2.csv
//	tracetool rotate --azimuths 0,90 --mode THROUGH --angle 30 -o out n.csv e.csv
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
