package hexmetrics

// featureThresholds[level-1][i] is the hash value below which prefab
// collection i is picked for development level 1..3.
var featureThresholds = [3][3]float32{
	{0, 0, 0.4},
	{0, 0.4, 0.6},
	{0.4, 0.6, 0.8},
}

// MaxDevelopmentLevel is the highest urban, farm or plant level.
const MaxDevelopmentLevel = 3

// FeatureThresholds returns the selection thresholds for a development
// level. ok is false for level 0 and out of range levels.
func FeatureThresholds(level int) (thresholds [3]float32, ok bool) {
	if level <= 0 || level > MaxDevelopmentLevel {
		return thresholds, false
	}
	return featureThresholds[level-1], true
}
