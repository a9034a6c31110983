package domain

// Run is a maximal block of consecutive true values in a boolean mask.
type Run struct {
	Start  int `json:"start" yaml:"start"`
	Length int `json:"length" yaml:"length"`
}

// End returns the exclusive end index of the run.
func (r Run) End() int { return r.Start + r.Length }

// FindRuns locates runs by edge detection. The mask is padded with false at
// both ends and read as 0/1; in its first difference a +1 marks a run start
// and a -1 marks the exclusive end of the run that began at the matching +1.
func FindRuns(mask []bool) []Run {
	var starts, ends []int
	prev := 0
	for i := 0; i <= len(mask); i++ {
		cur := 0
		if i < len(mask) && mask[i] {
			cur = 1
		}
		switch cur - prev {
		case 1:
			starts = append(starts, i)
		case -1:
			ends = append(ends, i)
		}
		prev = cur
	}

	runs := make([]Run, len(starts))
	for k := range starts {
		runs[k] = Run{Start: starts[k], Length: ends[k] - starts[k]}
	}
	return runs
}

// AccumulateRuns locates runs in a single pass, extending the current run on
// true and closing it on false. It returns the same runs as FindRuns.
func AccumulateRuns(mask []bool) []Run {
	runs := make([]Run, 0)
	current := 0
	for i, v := range mask {
		if v {
			current++
			continue
		}
		if current > 0 {
			runs = append(runs, Run{Start: i - current, Length: current})
		}
		current = 0
	}
	if current > 0 {
		runs = append(runs, Run{Start: len(mask) - current, Length: current})
	}
	return runs
}

// RunLengths returns the length of each run in order.
func RunLengths(runs []Run) []int {
	lengths := make([]int, len(runs))
	for i, r := range runs {
		lengths[i] = r.Length
	}
	return lengths
}

// CountRuns returns how many runs are at least minLength long.
func CountRuns(runs []Run, minLength int) int {
	n := 0
	for _, r := range runs {
		if r.Length >= minLength {
			n++
		}
	}
	return n
}

// Mask evaluates pred over values.
func Mask(values []float64, pred func(float64) bool) []bool {
	mask := make([]bool, len(values))
	for i, v := range values {
		mask[i] = pred(v)
	}
	return mask
}
