package tax

// usufructBand maps an exclusive age ceiling to the usufruct percentage of
// the barème fiscal (article 669 CGI). Bands are checked in order.
type usufructBand struct {
	AgeBelow int
	Rate     float64
}

var usufructScale = []usufructBand{
	{21, 90},
	{31, 80},
	{41, 70},
	{51, 60},
	{61, 50},
	{71, 40},
	{81, 30},
	{91, 20},
}

// UsufructRate returns the percentage of an asset's full value attributed
// to the usufruct, banded by the usufructuary's age. Ages of 91 and above
// retain a 10% usufruct.
func UsufructRate(usufructuaryAge int) float64 {
	for _, band := range usufructScale {
		if usufructuaryAge < band.AgeBelow {
			return band.Rate
		}
	}
	return 10
}

// BareOwnershipValue returns the bare-ownership share of fullValue, i.e.
// the full value minus the age-banded usufruct. Negative values yield 0.
func BareOwnershipValue(fullValue float64, usufructuaryAge int) float64 {
	if fullValue <= 0 {
		return 0
	}
	return fullValue * (100 - UsufructRate(usufructuaryAge)) / 100
}
