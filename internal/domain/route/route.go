package route

// Route identifies one of the two fixed directional bus trips.
type Route string

const (
	MannarToColombo Route = "Mannar to Colombo"
	ColomboToMannar Route = "Colombo to Mannar"
)

// All returns every configured route in service order.
func All() []Route {
	return []Route{MannarToColombo, ColomboToMannar}
}

// IsValid returns true if the route is one of the configured labels.
func (r Route) IsValid() bool {
	return r == MannarToColombo || r == ColomboToMannar
}

// String returns the route label.
func (r Route) String() string {
	return string(r)
}

// boardingPoints lists the named stops where passengers join, in travel order.
var boardingPoints = map[Route][]string{
	MannarToColombo: {
		"Mannar Bus Stand",
		"Thalladi",
		"Sirunavalkulam",
		"Uyilankulam Post Office",
		"Uyilankulam Petrol Shed",
		"Uyilankulam Kuruchadi",
		"14th Mile Post",
		"Semmanthevu",
		"Murunkan Police Stn",
		"Murunkan Town",
		"Katkadanthakulam",
		"Madu Jn",
		"Manic Farm Seddikulam",
		"Seddikulam",
		"Muthaliyarkulam",
		"Madawachiya",
		"Anuradhapura",
		"Nochchiyagama",
		"Puttalam",
		"Palavi Jn",
		"Madurankuli Jn",
		"Chilaw Roundabout",
		"Chillaw Hospital",
	},
	ColomboToMannar: {
		"Mirage Hotel",
		"Bampalapitty Flats Sea Side",
		"Bampalapitty Railway Stn",
		"Galleface Bus Stop Opp Taj Hotel",
		"Pettah Bus Stand",
		"Kettiyawatta Bus Halt",
		"Armour Street DIMO Company",
		"Stadium Petrol Shed",
		"Thotalanga",
		"Peliyagoda Highway Jn",
		"Katunayake Airport Bus Halt After Highway End",
		"Koppara Jn",
		"Periyamulla Jn Opp Al Amra Hotel",
		"Negombo Kochikadai People's Bank",
		"Wennappuwa Police Stn Opp",
		"Maarawila Town",
		"Chillaw Hospital",
		"Chillaw Roundabout",
		"Chillaw Railway Gate",
		"Madurankuli Jn",
		"Palavi Jn",
		"Puttalam",
	},
}

// BoardingPoints returns the ordered stop list for the route, or nil for an
// unknown route.
func (r Route) BoardingPoints() []string {
	return boardingPoints[r]
}
