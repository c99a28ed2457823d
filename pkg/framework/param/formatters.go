package param

import (
	"fmt"
	"strconv"
	"strings"
)

// ChannelFormatter formats a 1-based MIDI channel
func ChannelFormatter(ch float64) string {
	return fmt.Sprintf("Ch %.0f", ch)
}

// ChannelParser accepts "Ch 3", "ch3" or "3"
func ChannelParser(str string) (float64, error) {
	return parsePrefixed(str, "ch")
}

// ControllerFormatter formats a CC number
func ControllerFormatter(cc float64) string {
	return fmt.Sprintf("CC %.0f", cc)
}

// ControllerParser accepts "CC 7", "cc7" or "7"
func ControllerParser(str string) (float64, error) {
	return parsePrefixed(str, "cc")
}

// SensitivityFormatter formats a multiplier
func SensitivityFormatter(value float64) string {
	return fmt.Sprintf("x%.2f", value)
}

// SensitivityParser accepts "x1.5" or "1.5"
func SensitivityParser(str string) (float64, error) {
	return parsePrefixed(str, "x")
}

func parsePrefixed(str, prefix string) (float64, error) {
	s := strings.TrimSpace(str)
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		s = strings.TrimSpace(s[len(prefix):])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("param: parse %q: %w", str, err)
	}
	return v, nil
}
