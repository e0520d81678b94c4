package bufferpool

import "github.com/zhukovaskychina/pagestore/replacement"

// StrategyTag is the configuration-level replacement-strategy name, kept
// as a string tag (rather than a typed enum) because invalid tags must
// surface as a PinPage-time error, exactly as the original source's
// pinPage switch defaults, not as an init-time rejection.
type StrategyTag string

const (
	FIFO StrategyTag = "FIFO"
	LRU  StrategyTag = "LRU"
	LRUK StrategyTag = "LRU_K"
)

func buildStrategy(tag StrategyTag, strategyData interface{}) replacement.Strategy {
	switch tag {
	case FIFO:
		return replacement.NewFIFO()
	case LRU:
		return replacement.NewLRU()
	case LRUK:
		k := 1
		if params, ok := strategyData.(*replacement.LRUKParams); ok && params != nil && params.K > 0 {
			k = params.K
		}
		return replacement.NewLRUK(k)
	default:
		return nil
	}
}
