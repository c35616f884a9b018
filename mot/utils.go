package mot

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
