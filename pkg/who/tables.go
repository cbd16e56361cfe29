package who

import "github.com/sproutlab/sprout/pkg/growth"

// Medians are WHO 50th percentile values for months 0..36.
// Weight in kg, height and head circumference in cm.

var weightMedianMale = [...]float64{
	3.3, 4.5, 5.6, 6.4, 7.0, 7.5, 7.9, 8.3, 8.6, 8.9, 9.2, 9.4,
	9.6, 9.9, 10.1, 10.3, 10.5, 10.7, 10.9, 11.1, 11.3, 11.5, 11.8, 12.0,
	12.2, 12.5, 12.7, 13.0, 13.2, 13.5, 13.7, 14.0, 14.2, 14.4, 14.6, 14.9,
	15.1,
}

var weightMedianFemale = [...]float64{
	3.2, 4.2, 5.1, 5.8, 6.4, 6.9, 7.3, 7.6, 7.9, 8.2, 8.5, 8.7,
	8.9, 9.2, 9.4, 9.6, 9.8, 10.0, 10.2, 10.4, 10.6, 10.9, 11.1, 11.3,
	11.5, 11.7, 11.9, 12.1, 12.3, 12.5, 12.7, 12.9, 13.1, 13.3, 13.5, 13.7,
	13.9,
}

var heightMedianMale = [...]float64{
	49.9, 54.7, 58.4, 61.4, 63.9, 65.9, 67.6, 69.2, 70.6, 72.0, 73.3, 74.5,
	75.7, 76.9, 78.0, 79.1, 80.2, 81.2, 82.3, 83.2, 84.2, 85.1, 86.0, 86.9,
	87.8, 88.7, 89.6, 90.4, 91.2, 92.0, 92.8, 93.6, 94.4, 95.2, 95.9, 96.7,
	97.4,
}

var heightMedianFemale = [...]float64{
	49.1, 53.7, 57.1, 59.8, 62.1, 64.0, 65.7, 67.3, 68.7, 70.1, 71.3, 72.6,
	73.8, 75.0, 76.1, 77.2, 78.2, 79.2, 80.2, 81.1, 82.0, 82.9, 83.8, 84.6,
	85.4, 86.2, 87.0, 87.8, 88.5, 89.2, 89.9, 90.6, 91.3, 92.0, 92.6, 93.2,
	93.9,
}

var headMedianMale = [...]float64{
	34.5, 37.3, 39.1, 40.5, 41.6, 42.6, 43.3, 44.0, 44.5, 45.0, 45.4, 45.8,
	46.1, 46.3, 46.6, 46.8, 47.0, 47.2, 47.4, 47.5, 47.7, 47.8, 48.0, 48.1,
	48.3, 48.4, 48.5, 48.6, 48.7, 48.8, 48.9, 49.0, 49.1, 49.2, 49.3, 49.4,
	49.5,
}

var headMedianFemale = [...]float64{
	33.9, 36.5, 38.3, 39.5, 40.6, 41.5, 42.2, 42.8, 43.4, 43.8, 44.2, 44.6,
	44.9, 45.2, 45.4, 45.7, 45.9, 46.1, 46.2, 46.4, 46.6, 46.7, 46.9, 47.0,
	47.2, 47.3, 47.5, 47.6, 47.7, 47.8, 47.9, 48.0, 48.1, 48.2, 48.3, 48.4,
	48.5,
}

// Standard deviations for months 0..23.

var weightSDMale = [...]float64{
	0.45, 0.55, 0.65, 0.70, 0.75, 0.80, 0.85, 0.90, 0.92, 0.95, 0.98, 1.00,
	1.03, 1.05, 1.08, 1.10, 1.13, 1.15, 1.18, 1.20, 1.23, 1.25, 1.28, 1.30,
}

var weightSDFemale = [...]float64{
	0.43, 0.52, 0.60, 0.66, 0.72, 0.77, 0.82, 0.86, 0.90, 0.93, 0.96, 0.99,
	1.02, 1.05, 1.08, 1.11, 1.14, 1.17, 1.20, 1.23, 1.26, 1.29, 1.32, 1.35,
}

var heightSDMale = [...]float64{
	1.9, 2.0, 2.1, 2.1, 2.1, 2.2, 2.2, 2.3, 2.3, 2.4, 2.4, 2.5,
	2.6, 2.6, 2.7, 2.7, 2.8, 2.9, 2.9, 3.0, 3.0, 3.1, 3.1, 3.2,
}

var heightSDFemale = [...]float64{
	1.9, 2.0, 2.0, 2.1, 2.1, 2.2, 2.3, 2.3, 2.4, 2.5, 2.5, 2.6,
	2.6, 2.7, 2.8, 2.8, 2.9, 3.0, 3.0, 3.1, 3.1, 3.2, 3.2, 3.3,
}

var headSDMale = [...]float64{
	1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2,
	1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.3, 1.3, 1.3, 1.3,
}

var headSDFemale = [...]float64{
	1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2,
	1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.2, 1.3, 1.3, 1.3, 1.3,
}

// table bundles everything needed to answer lookups for one (metric, sex).
type table struct {
	median []float64
	sd     []float64
	// gain is the monthly median increase applied past the last tabulated month.
	gain float64
	// sdTail is returned for every month past the SD table.
	sdTail float64
}

var tables = map[growth.Metric]map[growth.Sex]table{
	growth.Weight: {
		growth.Male:   {median: weightMedianMale[:], sd: weightSDMale[:], gain: 0.15, sdTail: 1.8},
		growth.Female: {median: weightMedianFemale[:], sd: weightSDFemale[:], gain: 0.14, sdTail: 1.8},
	},
	growth.Height: {
		growth.Male:   {median: heightMedianMale[:], sd: heightSDMale[:], gain: 0.5, sdTail: 3.5},
		growth.Female: {median: heightMedianFemale[:], sd: heightSDFemale[:], gain: 0.45, sdTail: 3.5},
	},
	growth.HeadCircumference: {
		growth.Male:   {median: headMedianMale[:], sd: headSDMale[:], gain: 0.08, sdTail: 1.5},
		growth.Female: {median: headMedianFemale[:], sd: headSDFemale[:], gain: 0.07, sdTail: 1.5},
	},
}
