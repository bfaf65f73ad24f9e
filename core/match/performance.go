package match

import (
	"gonum.org/v1/gonum/stat"

	"github.com/coreflux/dispatchd/core/model"
)

// PerformanceScore condenses a technician's skill history into one value: the
// mean of the productive-dispatch rate and the first-time-fix rate.
func PerformanceScore(h model.SkillHistory) float64 {
	return stat.Mean([]float64{h.AvgProductive, h.AvgFirstTimeFix}, nil)
}
