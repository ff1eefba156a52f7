package profile

// Platform selects the minimum friend tile size used by the grid.
type Platform string

const (
	PlatformDesktop  Platform = "desktop"
	PlatformMobile   Platform = "mobile"
	PlatformTerminal Platform = "terminal"
)

// Minimum friend tile sizes. Desktop and mobile are pixels, terminal is cells.
const (
	DesktopMinItemSize  = 120
	MobileMinItemSize   = 105
	TerminalMinItemSize = 18
)

// MinItemSize returns the minimum tile width for p. Unknown platforms use the
// terminal size.
func (p Platform) MinItemSize() int {
	switch p {
	case PlatformDesktop:
		return DesktopMinItemSize
	case PlatformMobile:
		return MobileMinItemSize
	default:
		return TerminalMinItemSize
	}
}

// ParsePlatform maps a config value onto a Platform, falling back to terminal.
func ParsePlatform(s string) Platform {
	switch Platform(s) {
	case PlatformDesktop, PlatformMobile:
		return Platform(s)
	default:
		return PlatformTerminal
	}
}

// LayoutMetrics is the friend grid geometry derived from a container width.
type LayoutMetrics struct {
	ItemsPerRow int
	ItemWidth   int
}

// ComputeLayout fits as many minItemSize tiles as possible into containerWidth.
// At least one tile per row is always reported, even when the container is
// narrower than a single tile. Leftover cells from the division are dropped.
func ComputeLayout(containerWidth, minItemSize int) LayoutMetrics {
	if containerWidth < 0 {
		containerWidth = 0
	}
	if minItemSize <= 0 {
		minItemSize = 1
	}
	perRow := max(1, containerWidth/minItemSize)
	return LayoutMetrics{
		ItemsPerRow: perRow,
		ItemWidth:   containerWidth / perRow,
	}
}

// PartitionIntoRows splits items into consecutive rows of itemsPerRow. The last
// row may be shorter. An unmeasured grid (itemsPerRow <= 0) has no rows.
func PartitionIntoRows[T any](items []T, itemsPerRow int) [][]T {
	if itemsPerRow <= 0 || len(items) == 0 {
		return [][]T{}
	}
	rows := make([][]T, 0, (len(items)+itemsPerRow-1)/itemsPerRow)
	for start := 0; start < len(items); start += itemsPerRow {
		end := min(start+itemsPerRow, len(items))
		rows = append(rows, items[start:end:end])
	}
	return rows
}
