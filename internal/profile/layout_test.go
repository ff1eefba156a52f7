package profile

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeLayoutScenarios(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		width, min    int
		perRow, itemW int
	}{
		{"five across", 650, 120, 5, 130},
		{"narrower than one tile", 50, 120, 1, 50},
		{"zero width", 0, 120, 1, 0},
		{"exact fit", 360, 120, 3, 120},
		{"mobile", 420, MobileMinItemSize, 4, 105},
		{"terminal", 80, TerminalMinItemSize, 4, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ComputeLayout(tc.width, tc.min)
			require.Equal(t, tc.perRow, m.ItemsPerRow)
			require.Equal(t, tc.itemW, m.ItemWidth)
		})
	}
}

func TestComputeLayoutNeverOvershoots(t *testing.T) {
	t.Parallel()

	for width := 0; width <= 1000; width += 7 {
		for _, size := range []int{1, 17, 105, 120, 333} {
			m := ComputeLayout(width, size)
			require.GreaterOrEqual(t, m.ItemsPerRow, 1)
			require.LessOrEqual(t, m.ItemWidth*m.ItemsPerRow, width, "width=%d size=%d", width, size)
		}
	}
}

func TestComputeLayoutBadMinSize(t *testing.T) {
	t.Parallel()

	m := ComputeLayout(10, 0)
	require.Equal(t, LayoutMetrics{ItemsPerRow: 10, ItemWidth: 1}, m)
}

func TestPartitionIntoRows(t *testing.T) {
	t.Parallel()

	rows := PartitionIntoRows([]string{"a", "b", "c", "d", "e"}, 2)
	require.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, rows)
}

func TestPartitionIntoRowsReconstructs(t *testing.T) {
	t.Parallel()

	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}
	for n := 1; n <= 25; n++ {
		rows := PartitionIntoRows(items, n)
		var joined []int
		for i, r := range rows {
			if i < len(rows)-1 {
				require.Len(t, r, n)
			}
			require.LessOrEqual(t, len(r), n)
			joined = append(joined, r...)
		}
		require.True(t, slices.Equal(items, joined), "n=%d", n)
	}
}

func TestPartitionIntoRowsUnmeasured(t *testing.T) {
	t.Parallel()

	rows := PartitionIntoRows([]string{"a", "b"}, 0)
	require.NotNil(t, rows)
	require.Empty(t, rows)
	require.Empty(t, PartitionIntoRows([]string{"a"}, -3))
	require.Empty(t, PartitionIntoRows([]string(nil), 4))
}

func TestPartitionRowsDoNotAlias(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c"}
	rows := PartitionIntoRows(items, 2)
	rows[0] = append(rows[0], "x")
	require.Equal(t, []string{"a", "b", "c"}, items)
}

func TestPlatform(t *testing.T) {
	t.Parallel()

	require.Equal(t, 120, PlatformDesktop.MinItemSize())
	require.Equal(t, 105, PlatformMobile.MinItemSize())
	require.Equal(t, TerminalMinItemSize, Platform("").MinItemSize())
	require.Equal(t, PlatformMobile, ParsePlatform("mobile"))
	require.Equal(t, PlatformTerminal, ParsePlatform("watch"))
}
