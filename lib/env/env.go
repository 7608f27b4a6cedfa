package env

import (
	"os"
	"strconv"
)

func Debug() bool {
	return os.Getenv("DEBUG") != ""
}

// Timeout is the number of seconds in SVGDRAW_TIMEOUT, if it is a valid integer.
func Timeout() (int, bool) {
	if s := os.Getenv("SVGDRAW_TIMEOUT"); s != "" {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return int(i), true
		}
	}
	return -1, false
}
