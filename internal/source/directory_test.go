package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const directoryHTML = `
<html><body>
  <div class="listing" data-id="biz-1">
    <h3 class="name">NileFresh</h3>
    <p class="description">Produce delivery across Cairo</p>
    <span class="category">Food</span>
    <span class="stage">seed</span>
    <span class="location">Cairo, Egypt</span>
  </div>
  <div class="listing" data-id="biz-2">
    <h3>DeltaGrow</h3>
    <span class="price">EGP&nbsp;5,000</span>
  </div>
  <div class="listing" data-id="biz-1">
    <h3 class="name">Duplicate entry</h3>
  </div>
  <div class="listing"></div>
</body></html>`

func TestParseDirectory(t *testing.T) {
	records, err := parseDirectory(strings.NewReader(directoryHTML))
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, "biz-1", records[0].ID)
	require.Equal(t, "NileFresh", records[0].Name)
	require.Equal(t, "Produce delivery across Cairo", records[0].Description)
	require.Equal(t, "Food", records[0].Category)
	require.Equal(t, "seed", records[0].Stage)
	require.Equal(t, "Cairo, Egypt", records[0].Location.Raw)

	// heading fallback for the name, nbsp collapsed in the price
	require.Equal(t, "DeltaGrow", records[1].Name)
	require.Equal(t, "EGP 5,000", records[1].Price.String())
}
