package news

const (
	// targetNewsCount is the digest size ceiling. No aggregation call
	// ever returns more articles than this.
	targetNewsCount = 6

	// maxItemsPerSymbol bounds the worst-case fetch volume when only a
	// single symbol is watched.
	maxItemsPerSymbol = 6
)

type distribution struct {
	itemsPerSymbol  int
	targetNewsCount int
}

// planDistribution computes how many round-robin passes over the given
// number of symbols are needed to plausibly fill the digest:
// ceil(target/symbolCount), floored at 1 and capped at maxItemsPerSymbol.
func planDistribution(symbolCount int) distribution {
	perSymbol := (targetNewsCount + symbolCount - 1) / symbolCount
	if perSymbol < 1 {
		perSymbol = 1
	}
	if perSymbol > maxItemsPerSymbol {
		perSymbol = maxItemsPerSymbol
	}

	return distribution{
		itemsPerSymbol:  perSymbol,
		targetNewsCount: targetNewsCount,
	}
}
