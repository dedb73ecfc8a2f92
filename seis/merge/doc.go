// Package merge splices same-channel trace segments into one continuous
// trace.
//
// A pair is classified, in order, as a subset (the later segment lies
// entirely inside the earlier one), an overlap (the later segment starts
// at or before the earlier one ends), sequential (it starts within 1.5
// sample intervals of the end) or gapped. Overlaps are aligned by searching
// a small sample-shift window for the smallest median absolute difference;
// gaps are filled according to the configured GapStrategy.
//
// Merging never modifies its inputs. Each successful merge returns a new
// trace whose DELTA is the mean of the two input intervals.
package merge
