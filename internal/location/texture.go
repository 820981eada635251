package location

// ClassifyTexture names the USDA texture class for the given separates, in
// percent. Rules run in order and the first match wins. Clay at or above 40 %
// classifies on its own; every later rule returns Unknown when an operand it
// needs is missing.
func ClassifyTexture(clay, sand, silt *float64) string {
	if clay == nil {
		return "Unknown"
	}
	if *clay >= 40 {
		return "Clay"
	}
	if *clay >= 27 {
		if sand == nil {
			return "Unknown"
		}
		if *sand > 45 {
			return "Sandy Clay"
		}
		return "Clay Loam"
	}
	if *clay >= 20 {
		if sand == nil {
			return "Unknown"
		}
		if *sand > 45 {
			return "Sandy Clay Loam"
		}
		return "Loam"
	}
	if sand == nil {
		return "Unknown"
	}
	if *sand >= 70 {
		if *clay >= 15 {
			return "Sandy Clay Loam"
		}
		return "Sandy Loam"
	}
	if silt == nil {
		return "Unknown"
	}
	if *silt >= 50 {
		if *clay < 12 {
			return "Silt Loam"
		}
		return "Silty Clay Loam"
	}
	return "Loam"
}
