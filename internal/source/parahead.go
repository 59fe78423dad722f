package source

import (
	"strconv"
)

const maxHeadLevels = 10

// ParaHeadCounter computes paragraph heads for numbered and bulleted
// paragraphs in document order.
type ParaHeadCounter struct {
	bullet string
	counts [maxHeadLevels]int
}

// NewParaHeadCounter creates a counter that uses bullet for bullet heads.
func NewParaHeadCounter(bullet string) *ParaHeadCounter {
	if bullet == "" {
		bullet = "•"
	}
	return &ParaHeadCounter{bullet: bullet}
}

// Next returns the head for a paragraph, including its trailing space.
// Numbering at a level resets every deeper level.
func (c *ParaHeadCounter) Next(kind HeadingType, level int) string {
	switch kind {
	case HeadingBullet:
		return c.bullet + " "
	case HeadingNumber, HeadingOutline:
		if level < 0 {
			level = 0
		}
		if level >= maxHeadLevels {
			level = maxHeadLevels - 1
		}
		c.counts[level]++
		for i := level + 1; i < maxHeadLevels; i++ {
			c.counts[i] = 0
		}
		return strconv.Itoa(c.counts[level]) + ". "
	default:
		return ""
	}
}
